package deepdist

import (
	"context"
	"reflect"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/distance"
	"github.com/hupe1980/deepdist/internal/conv"
)

// Verdict is a comparator's answer for one pair.
type Verdict int

const (
	// Declined means the comparator can not judge the pair.
	Declined Verdict = iota
	// Close means the pair is the same item, modified.
	Close
	// NotClose means the pair is unrelated.
	NotClose
)

func (v Verdict) String() string {
	switch v {
	case Close:
		return "close"
	case NotClose:
		return "not-close"
	default:
		return "declined"
	}
}

// Comparator judges whether an added item is a modified removed item.
type Comparator interface {
	Compare(added, removed any) Verdict
}

// ComparatorFunc adapts a function to Comparator.
type ComparatorFunc func(added, removed any) Verdict

// Compare implements Comparator.
func (f ComparatorFunc) Compare(added, removed any) Verdict {
	return f(added, removed)
}

// PairKey identifies an (added, removed) candidate pair.
type PairKey struct {
	Added   cache.Hash
	Removed cache.Hash
}

func (k PairKey) String() string {
	return k.Added.String() + "--" + k.Removed.String()
}

// DistanceTable maps candidate pairs to distances. A missing pair means no
// distance could be computed.
type DistanceTable map[PairKey]float64

// PairTable is the result of a pairwise precomputation.
type PairTable struct {
	Distances DistanceTable
	// Declined holds the ordinals i*len(removed)+j of pairs the comparator
	// declined.
	Declined *roaring.Bitmap

	removed int
}

func newPairTable(added, removed int) *PairTable {
	return &PairTable{
		Distances: make(DistanceTable, added*removed),
		Declined:  roaring.New(),
		removed:   removed,
	}
}

// IsDeclined reports whether the pair (added[i], removed[j]) was declined.
func (t *PairTable) IsDeclined(i, j int) bool {
	ord, err := conv.IntToUint32(i*t.removed + j)
	if err != nil {
		return false
	}
	return t.Declined.Contains(ord)
}

// DeclinedPairs returns the (added, removed) index pairs that were declined,
// in ascending order.
func (t *PairTable) DeclinedPairs() [][2]int {
	out := make([][2]int, 0, t.Declined.GetCardinality())
	it := t.Declined.Iterator()
	for it.HasNext() {
		ord, err := conv.Uint32ToInt(it.Next())
		if err != nil {
			break
		}
		out = append(out, [2]int{ord / t.removed, ord % t.removed})
	}
	return out
}

// Candidate is one distinct item of an unordered collection.
type Candidate struct {
	Item    any
	Indexes []int
}

// HashTable maps content hashes to candidates.
type HashTable map[cache.Hash]Candidate

// BuildHashTable hashes items with the session's hasher. order lists the
// distinct hashes by first occurrence.
func (s *Session) BuildHashTable(items []any) (table HashTable, order []cache.Hash, err error) {
	table = make(HashTable, len(items))
	for i, item := range items {
		h, err := s.hash(item)
		if err != nil {
			return nil, nil, err
		}
		c, seen := table[h]
		if !seen {
			c.Item = item
			order = append(order, h)
		}
		c.Indexes = append(c.Indexes, i)
		table[h] = c
	}
	return table, order, nil
}

// PrecalculateByComparator asks the configured comparator about every
// (added, removed) pair. Added items are looked up in t2, removed items in
// t1. It returns nil when no comparator is configured.
func (s *Session) PrecalculateByComparator(ctx context.Context, added, removed []cache.Hash, t1, t2 HashTable) *PairTable {
	if s.opts.comparator == nil {
		return nil
	}
	start := time.Now()

	eps := s.opts.epsilon
	if eps == 0 {
		eps = DefaultMathEpsilon
	}

	table := newPairTable(len(added), len(removed))
	for i, ah := range added {
		a, ok := t2[ah]
		if !ok {
			continue
		}
		for j, rh := range removed {
			r, ok := t1[rh]
			if !ok {
				continue
			}
			switch s.opts.comparator.Compare(a.Item, r.Item) {
			case Close:
				table.Distances[PairKey{Added: ah, Removed: rh}] = eps
			case NotClose:
				table.Distances[PairKey{Added: ah, Removed: rh}] = 1
			default:
				if ord, err := conv.IntToUint32(i*len(removed) + j); err == nil {
					table.Declined.Add(ord)
				}
			}
		}
	}

	declined := int(table.Declined.GetCardinality())
	s.metrics.RecordPrecompute("comparator", len(table.Distances), declined, time.Since(start))
	s.logger.LogPrecompute(ctx, "comparator", len(table.Distances), declined)
	return table
}

// PrecalculateNumeric computes the distance of every (added, removed) pair
// of plain numbers in one batch. pinned forces the numeric type; when nil
// both sides must share a homogeneous integer or float type. It returns nil
// when the candidates are not eligible.
func (s *Session) PrecalculateNumeric(ctx context.Context, added, removed []cache.Hash, t1, t2 HashTable, pinned reflect.Type) *PairTable {
	if len(added) == 0 || len(removed) == 0 {
		s.logger.LogPrecomputeSkipped(ctx, "numeric", "no candidates")
		return nil
	}
	if first, ok := t2[added[0]]; ok && isSequence(first.Item) {
		s.logger.LogPrecomputeSkipped(ctx, "numeric", "sequence items")
		return nil
	}
	start := time.Now()

	addedItems, ok := items(added, t2)
	if !ok {
		s.logger.LogPrecomputeSkipped(ctx, "numeric", "unknown added hash")
		return nil
	}
	removedItems, ok := items(removed, t1)
	if !ok {
		s.logger.LogPrecomputeSkipped(ctx, "numeric", "unknown removed hash")
		return nil
	}

	if pinned == nil {
		ac, rc := homogeneousClass(addedItems), homogeneousClass(removedItems)
		if ac == classNone || ac != rc {
			s.logger.LogPrecomputeSkipped(ctx, "numeric", "no shared numeric type")
			return nil
		}
	} else if !conv.IsNumberKind(pinned.Kind()) {
		s.logger.LogPrecomputeSkipped(ctx, "numeric", "pinned type is not numeric")
		return nil
	}

	n := len(added) * len(removed)
	left := make([]float64, 0, n)
	right := make([]float64, 0, n)
	for _, a := range addedItems {
		af, ok := coerce(a, pinned)
		if !ok {
			s.logger.LogPrecomputeSkipped(ctx, "numeric", "added item not convertible")
			return nil
		}
		for _, r := range removedItems {
			rf, ok := coerce(r, pinned)
			if !ok {
				s.logger.LogPrecomputeSkipped(ctx, "numeric", "removed item not convertible")
				return nil
			}
			left = append(left, af)
			right = append(right, rf)
		}
	}

	dists := make([]float64, n)
	if err := distance.ArrayInto(dists, left, right, s.opts.cutoff); err != nil {
		s.logger.WarnContext(ctx, "numeric precomputation failed", "error", err)
		return nil
	}

	table := newPairTable(len(added), len(removed))
	i := 0
	for _, ah := range added {
		for _, rh := range removed {
			table.Distances[PairKey{Added: ah, Removed: rh}] = dists[i]
			i++
		}
	}

	s.metrics.RecordPrecompute("numeric", len(table.Distances), 0, time.Since(start))
	s.logger.LogPrecompute(ctx, "numeric", len(table.Distances), 0)
	return table
}

func items(hashes []cache.Hash, table HashTable) ([]any, bool) {
	out := make([]any, len(hashes))
	for i, h := range hashes {
		c, ok := table[h]
		if !ok {
			return nil, false
		}
		out[i] = c.Item
	}
	return out, true
}

func isSequence(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

type numericClass int

const (
	classNone numericClass = iota
	classInt
	classFloat
)

func classOf(v any) numericClass {
	if _, ok := v.(time.Duration); ok {
		return classNone
	}
	k := reflect.ValueOf(v).Kind()
	switch {
	case conv.IsIntKind(k), conv.IsUintKind(k):
		return classInt
	case conv.IsFloatKind(k):
		return classFloat
	default:
		return classNone
	}
}

// homogeneousClass returns the shared numeric class of vs, or classNone.
func homogeneousClass(vs []any) numericClass {
	if len(vs) == 0 {
		return classNone
	}
	c := classOf(vs[0])
	for _, v := range vs[1:] {
		if classOf(v) != c {
			return classNone
		}
	}
	return c
}

// coerce converts v to float64, truncating through pinned when it is an
// integer type.
func coerce(v any, pinned reflect.Type) (float64, bool) {
	f, ok := conv.Float64(v)
	if !ok || pinned == nil {
		return f, ok
	}
	k := pinned.Kind()
	switch {
	case conv.IsIntKind(k):
		return float64(reflect.ValueOf(int64(f)).Convert(pinned).Int()), true
	case conv.IsUintKind(k):
		if f < 0 {
			return 0, false
		}
		return float64(reflect.ValueOf(uint64(f)).Convert(pinned).Uint()), true
	case k == reflect.Float32:
		return float64(float32(f)), true
	default:
		return f, true
	}
}
