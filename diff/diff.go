package diff

import (
	"bytes"
	"reflect"
	"time"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/deephash"
	"github.com/hupe1980/deepdist/distance"
	"github.com/hupe1980/deepdist/internal/conv"
	"github.com/hupe1980/deepdist/internal/visited"
)

// Options controls a single Diff call.
type Options struct {
	// IgnoreOrder compares slices and arrays as multisets.
	IgnoreOrder bool
	// ReportRepetition records repetition_change entries when an item occurs
	// a different number of times on each side. Only used with IgnoreOrder.
	ReportRepetition bool
}

// Option configures a Differ.
type Option func(*Differ)

// WithHasher sets the hasher used to match items when ignoring order.
func WithHasher(h *deephash.Hasher) Option {
	return func(d *Differ) {
		if h != nil {
			d.hasher = h
		}
	}
}

// Differ computes delta-view reports. It holds no per-call state and may be
// shared.
type Differ struct {
	hasher *deephash.Hasher
}

// New creates a Differ.
func New(optFns ...Option) *Differ {
	d := &Differ{hasher: deephash.New()}
	for _, fn := range optFns {
		fn(d)
	}
	return d
}

// Diff returns the operations that turn t1 into t2.
func (d *Differ) Diff(t1, t2 any, opts Options) (Report, error) {
	s := &state{
		hasher: d.hasher,
		opts:   opts,
		report: make(Report),
	}
	if err := s.diff(rootPath, reflect.ValueOf(t1), reflect.ValueOf(t2), visited.Set{}); err != nil {
		return nil, err
	}
	return s.report, nil
}

type state struct {
	hasher *deephash.Hasher
	hashes *cache.LengthCache
	opts   Options
	report Report
}

func (s *state) diff(path string, a, b reflect.Value, parents visited.Set) error {
	a, b = unwrap(a), unwrap(b)
	if !a.IsValid() && !b.IsValid() {
		return nil
	}
	if !a.IsValid() || !b.IsValid() || a.Type() != b.Type() {
		s.report.set(TypeChanges, path, map[string]any{
			"old_type":  typeOf(a),
			"new_type":  typeOf(b),
			"new_value": interfaceOf(b),
		})
		return nil
	}

	if id, ok := visited.IdentityOf(a); ok {
		if parents.Has(id) {
			return nil
		}
		parents = parents.With(id)
	}

	if isScalar(a) {
		if !scalarEqual(a, b) {
			s.report.set(ValuesChanged, path, map[string]any{"new_value": interfaceOf(b)})
		}
		return nil
	}

	switch a.Kind() {
	case reflect.Pointer:
		if a.IsNil() || b.IsNil() {
			if a.IsNil() != b.IsNil() {
				s.report.set(ValuesChanged, path, map[string]any{"new_value": interfaceOf(b)})
			}
			return nil
		}
		return s.diff(path, a.Elem(), b.Elem(), parents)
	case reflect.Map:
		return s.mapping(path, a, b, parents)
	case reflect.Slice, reflect.Array:
		if s.opts.IgnoreOrder {
			return s.unordered(path, a, b)
		}
		return s.ordered(path, a, b, parents)
	case reflect.Struct:
		t := a.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := s.diff(fieldPath(path, t.Field(i).Name), a.Field(i), b.Field(i), parents); err != nil {
				return err
			}
		}
		return nil
	default:
		if a.CanInterface() && b.CanInterface() && !reflect.DeepEqual(a.Interface(), b.Interface()) {
			s.report.set(ValuesChanged, path, map[string]any{"new_value": b.Interface()})
		}
		return nil
	}
}

func (s *state) mapping(path string, a, b reflect.Value, parents visited.Set) error {
	iter := a.MapRange()
	for iter.Next() {
		k := iter.Key()
		bv := b.MapIndex(k)
		if !bv.IsValid() {
			s.report.set(DictionaryItemRemoved, keyPath(path, k), interfaceOf(iter.Value()))
			continue
		}
		if err := s.diff(keyPath(path, k), iter.Value(), bv, parents); err != nil {
			return err
		}
	}

	iter = b.MapRange()
	for iter.Next() {
		if !a.MapIndex(iter.Key()).IsValid() {
			s.report.set(DictionaryItemAdded, keyPath(path, iter.Key()), interfaceOf(iter.Value()))
		}
	}
	return nil
}

func (s *state) ordered(path string, a, b reflect.Value, parents visited.Set) error {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if err := s.diff(indexPath(path, i), a.Index(i), b.Index(i), parents); err != nil {
			return err
		}
	}
	for i := n; i < b.Len(); i++ {
		s.report.set(IterableItemAdded, indexPath(path, i), interfaceOf(b.Index(i)))
	}
	for i := n; i < a.Len(); i++ {
		s.report.set(IterableItemRemoved, indexPath(path, i), interfaceOf(a.Index(i)))
	}
	return nil
}

// unordered matches items by content hash. Items present on one side only
// are reported by index; without ReportRepetition the multiplicity of
// shared items is ignored.
func (s *state) unordered(path string, a, b reflect.Value) error {
	byHashA, orderA, err := s.index(a)
	if err != nil {
		return err
	}
	byHashB, orderB, err := s.index(b)
	if err != nil {
		return err
	}

	added := make(map[int]any)
	for _, h := range orderB {
		if _, ok := byHashA[h]; ok {
			continue
		}
		for _, i := range byHashB[h] {
			added[i] = interfaceOf(b.Index(i))
		}
	}

	removed := make(map[int]any)
	for _, h := range orderA {
		idxA := byHashA[h]
		idxB, ok := byHashB[h]
		if !ok {
			for _, i := range idxA {
				removed[i] = interfaceOf(a.Index(i))
			}
			continue
		}
		if s.opts.ReportRepetition && len(idxA) != len(idxB) {
			s.report.set(RepetitionChange, indexPath(path, idxA[0]), map[string]any{
				"old_repeat": len(idxA),
				"new_repeat": len(idxB),
				"value":      interfaceOf(a.Index(idxA[0])),
			})
		}
	}

	if len(added) > 0 {
		s.report.set(IterableItemsAddedAtIndexes, path, added)
	}
	if len(removed) > 0 {
		s.report.set(IterableItemsRemovedAtIndex, path, removed)
	}
	return nil
}

// index hashes every item of v. order lists distinct hashes by first
// occurrence so reports are deterministic.
func (s *state) index(v reflect.Value) (map[cache.Hash][]int, []cache.Hash, error) {
	if s.hashes == nil {
		s.hashes = cache.NewLengthCache()
	}
	byHash := make(map[cache.Hash][]int, v.Len())
	var order []cache.Hash
	for i := 0; i < v.Len(); i++ {
		h, err := s.hasher.Hash(interfaceOf(v.Index(i)), s.hashes)
		if err != nil {
			return nil, nil, err
		}
		if _, seen := byHash[h]; !seen {
			order = append(order, h)
		}
		byHash[h] = append(byHash[h], i)
	}
	return byHash, order, nil
}

func isScalar(v reflect.Value) bool {
	switch k := v.Kind(); {
	case k == reflect.Bool, k == reflect.String, k == reflect.Complex64, k == reflect.Complex128, conv.IsNumberKind(k):
		return true
	case k == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return true
	}
	return v.CanInterface() && distance.Categorize(v.Interface()) != distance.None
}

func scalarEqual(a, b reflect.Value) bool {
	if ta, ok := interfaceOf(a).(time.Time); ok {
		return ta.Equal(interfaceOf(b).(time.Time))
	}
	switch k := a.Kind(); {
	case conv.IsNumberKind(k):
		eq, _ := conv.Equal(interfaceOf(a), interfaceOf(b))
		return eq
	case k == reflect.Slice:
		return bytes.Equal(a.Bytes(), b.Bytes())
	case a.Comparable():
		return a.Equal(b)
	default:
		return reflect.DeepEqual(interfaceOf(a), interfaceOf(b))
	}
}

func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func typeOf(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}
	return v.Type()
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
