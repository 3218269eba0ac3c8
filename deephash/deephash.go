package deephash

import (
	"encoding/binary"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/distance"
	"github.com/hupe1980/deepdist/internal/conv"
	"github.com/hupe1980/deepdist/internal/visited"
)

// Hash is the content hash type shared with the cache.
type Hash = cache.Hash

// Type tags keep differently typed values with equal bytes apart.
const (
	tagNil     = 'n'
	tagBool    = 'b'
	tagInt     = 'i'
	tagUint    = 'u'
	tagFloat   = 'f'
	tagNumber  = '#'
	tagComplex = 'c'
	tagString  = 's'
	tagBytes   = 'y'
	tagTime    = 't'
	tagMap     = 'm'
	tagList    = 'l'
	tagStruct  = 'S'
	tagType    = 'T'
	tagOpaque  = 'o'
	tagCycle   = '@'
)

var typeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// Hasher hashes values into a LengthCache.
type Hasher struct {
	opts options
}

// New creates a Hasher.
func New(optFns ...Option) *Hasher {
	o := options{significantDigits: -1}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Hasher{opts: o}
}

// Hash returns the content hash of v and stores v and every sub-value in c.
// The only error is cache.ErrPurged.
func (h *Hasher) Hash(v any, c *cache.LengthCache) (Hash, error) {
	w := walker{opts: h.opts, cache: c}
	sum, _, err := w.hash(reflect.ValueOf(v), visited.Set{})
	return sum, err
}

type walker struct {
	opts  options
	cache *cache.LengthCache
	buf   []byte
}

func (w *walker) hash(rv reflect.Value, parents visited.Set) (Hash, int, error) {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || (rv.Kind() == reflect.Interface && rv.IsNil()) {
		sum := w.leaf(tagNil, nil)
		return sum, 1, w.cache.Put(sum, nil, 1)
	}

	id, hasID := visited.IdentityOf(rv)
	if hasID {
		if parents.Has(id) {
			return w.leaf(tagCycle, nil), 0, nil
		}
		if rv.CanInterface() {
			if sum, e, ok, err := w.cache.Lookup(rv.Interface()); err != nil {
				return 0, 0, err
			} else if ok {
				return sum, e.Length, nil
			}
		}
		parents = parents.With(id)
	}

	sum, length, err := w.compute(rv, parents)
	if err != nil {
		return 0, 0, err
	}
	if rv.CanInterface() {
		if err := w.cache.Put(sum, rv.Interface(), length); err != nil {
			return 0, 0, err
		}
	}
	return sum, length, nil
}

func (w *walker) compute(rv reflect.Value, parents visited.Set) (Hash, int, error) {
	if rv.Type().Implements(typeType) && rv.CanInterface() {
		return w.leaf(tagType, []byte(rv.Interface().(reflect.Type).String())), 1, nil
	}
	if rv.CanInterface() {
		if t, ok := rv.Interface().(time.Time); ok {
			b, _ := t.UTC().MarshalBinary()
			return w.leaf(tagTime, b), 1, nil
		}
		if c := distance.Categorize(rv.Interface()); c == distance.CalendarDate || c == distance.ClockTime {
			return w.leaf(tagTime, []byte(rv.Interface().(interface{ String() string }).String())), 1, nil
		}
	}

	switch k := rv.Kind(); {
	case k == reflect.Bool:
		if rv.Bool() {
			return w.leaf(tagBool, []byte{1}), 1, nil
		}
		return w.leaf(tagBool, []byte{0}), 1, nil
	case conv.IsNumberKind(k):
		return w.number(rv), 1, nil
	case k == reflect.Complex64 || k == reflect.Complex128:
		c := rv.Complex()
		b := binary.LittleEndian.AppendUint64(nil, math.Float64bits(real(c)))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(imag(c)))
		return w.leaf(tagComplex, b), 1, nil
	case k == reflect.String:
		s := rv.String()
		if w.opts.ignoreStringCase {
			s = strings.ToLower(s)
		}
		return w.leaf(tagString, []byte(s)), 1, nil
	case (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() == reflect.Uint8:
		return w.bytes(rv), 1, nil
	case k == reflect.Pointer:
		if rv.IsNil() {
			return w.leaf(tagNil, nil), 1, nil
		}
		return w.hash(rv.Elem(), parents)
	case k == reflect.Slice || k == reflect.Array:
		return w.list(rv, parents)
	case k == reflect.Map:
		return w.mapping(rv, parents)
	case k == reflect.Struct:
		return w.record(rv, parents)
	default:
		return w.leaf(tagOpaque, []byte(rv.Type().String())), 1, nil
	}
}

func (w *walker) number(rv reflect.Value) Hash {
	k := rv.Kind()
	if w.opts.ignoreNumericTypeChanges {
		f, _ := conv.ValueFloat64(rv)
		return w.leaf(tagNumber, w.formatFloat(f))
	}
	// The type name keeps int(1), int64(1) and time.Duration(1) apart.
	b := append([]byte(rv.Type().String()), ':')
	switch {
	case conv.IsIntKind(k):
		return w.leaf(tagInt, strconv.AppendInt(b, rv.Int(), 10))
	case conv.IsUintKind(k):
		return w.leaf(tagUint, strconv.AppendUint(b, rv.Uint(), 10))
	default:
		return w.leaf(tagFloat, append(b, w.formatFloat(rv.Float())...))
	}
}

// bytes hashes byte slices and byte arrays as one opaque value, typed like
// numbers so [4]byte and []byte stay apart.
func (w *walker) bytes(rv reflect.Value) Hash {
	b := append([]byte(rv.Type().String()), ':')
	if rv.Kind() == reflect.Slice {
		return w.leaf(tagBytes, append(b, rv.Bytes()...))
	}
	start := len(b)
	b = append(b, make([]byte, rv.Len())...)
	reflect.Copy(reflect.ValueOf(b[start:]), rv)
	return w.leaf(tagBytes, b)
}

func (w *walker) formatFloat(f float64) []byte {
	if w.opts.significantDigits >= 0 {
		return strconv.AppendFloat(nil, f, 'f', w.opts.significantDigits, 64)
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64)
}

func (w *walker) list(rv reflect.Value, parents visited.Set) (Hash, int, error) {
	d := xxhash.New()
	_, _ = d.Write([]byte{tagList})
	length := 0
	for i := 0; i < rv.Len(); i++ {
		sum, n, err := w.hash(rv.Index(i), parents)
		if err != nil {
			return 0, 0, err
		}
		w.buf = binary.LittleEndian.AppendUint64(w.buf[:0], uint64(sum))
		_, _ = d.Write(w.buf)
		length += n
	}
	return Hash(d.Sum64()), length, nil
}

// mapping is order independent: entry hashes are sorted before mixing.
// Keys are hashed but only values count towards the length.
func (w *walker) mapping(rv reflect.Value, parents visited.Set) (Hash, int, error) {
	entries := make([]uint64, 0, rv.Len())
	length := 0
	iter := rv.MapRange()
	for iter.Next() {
		ks, _, err := w.hash(iter.Key(), parents)
		if err != nil {
			return 0, 0, err
		}
		vs, n, err := w.hash(iter.Value(), parents)
		if err != nil {
			return 0, 0, err
		}
		w.buf = binary.LittleEndian.AppendUint64(w.buf[:0], uint64(ks))
		w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(vs))
		entries = append(entries, xxhash.Sum64(w.buf))
		length += n
	}
	slices.Sort(entries)

	d := xxhash.New()
	_, _ = d.Write([]byte{tagMap})
	for _, e := range entries {
		w.buf = binary.LittleEndian.AppendUint64(w.buf[:0], e)
		_, _ = d.Write(w.buf)
	}
	return Hash(d.Sum64()), length, nil
}

// record hashes the type name and exported fields of a struct.
func (w *walker) record(rv reflect.Value, parents visited.Set) (Hash, int, error) {
	t := rv.Type()
	d := xxhash.New()
	_, _ = d.Write([]byte{tagStruct})
	_, _ = d.WriteString(t.String())
	length := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		sum, n, err := w.hash(rv.Field(i), parents)
		if err != nil {
			return 0, 0, err
		}
		_, _ = d.WriteString(f.Name)
		w.buf = binary.LittleEndian.AppendUint64(w.buf[:0], uint64(sum))
		_, _ = d.Write(w.buf)
		length += n
	}
	return Hash(d.Sum64()), length, nil
}

func (w *walker) leaf(tag byte, payload []byte) Hash {
	d := xxhash.New()
	_, _ = d.Write([]byte{tag})
	_, _ = d.Write(payload)
	return Hash(d.Sum64())
}
