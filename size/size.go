// Package size measures how many atomic elements a value is made of.
//
// It is used on structural diff reports to count the operations they
// describe, and works on arbitrary Go values: maps, slices, arrays,
// pointers, scalars and structs. Cyclic values are safe: a reference value
// already on the current recursion path contributes nothing.
package size

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hupe1980/deepdist/distance"
	"github.com/hupe1980/deepdist/internal/conv"
	"github.com/hupe1980/deepdist/internal/visited"
)

// Report keys with special treatment.
const (
	KeyItemsAddedAtIndexes   = "iterable_items_added_at_indexes"
	KeyItemsRemovedAtIndexes = "iterable_items_removed_at_indexes"
	KeyDeepDistance          = "deep_distance"
	KeyNewPath               = "new_path"

	// InternalKeyPrefix marks bookkeeping keys that are not operations.
	InternalKeyPrefix = "_"
)

// Iterable is implemented by ordered containers that are neither slices nor
// arrays. Their elements are counted like slice elements.
type Iterable interface {
	Len() int
	At(i int) any
}

var typeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// Of returns the size of v:
//
//   - maps: the sizes of their values, minus skipped keys
//   - numbers, bools, strings, []byte, [N]byte and date/time values: 1
//   - slices, arrays and Iterables: the sizes of their elements
//   - reflect.Type values: 1
//   - structs: the number of fields
//   - nil, funcs and channels: 0
//
// Struct fields are counted by name only; field values are not visited.
func Of(v any) int {
	return of(reflect.ValueOf(v), visited.Set{})
}

func of(rv reflect.Value, parents visited.Set) int {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return 0
	}

	if rv.CanInterface() {
		if rv.Type().Implements(typeType) {
			return 1
		}
		x := rv.Interface()
		if distance.Categorize(x) != distance.None {
			return 1
		}
		if it, ok := x.(Iterable); ok && rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return ofIterable(it, parents)
		}
	}

	switch k := rv.Kind(); {
	case k == reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
		// The pointee is guarded like a container element, so a pointer
		// that leads back to itself ends here.
		id, _ := visited.IdentityOf(rv)
		return ofChild(rv.Elem(), parents.With(id))
	case k == reflect.Map:
		return ofMap(rv, parents)
	case conv.IsNumberKind(k), k == reflect.Bool, k == reflect.Complex64, k == reflect.Complex128, k == reflect.String:
		return 1
	case (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() == reflect.Uint8:
		return 1
	case k == reflect.Slice, k == reflect.Array:
		n := 0
		for i := 0; i < rv.Len(); i++ {
			n += ofChild(rv.Index(i), parents)
		}
		return n
	case k == reflect.Struct:
		return rv.NumField()
	default:
		return 0
	}
}

func ofIterable(it Iterable, parents visited.Set) int {
	n := 0
	for i := 0; i < it.Len(); i++ {
		n += ofChild(reflect.ValueOf(it.At(i)), parents)
	}
	return n
}

func ofMap(rv reflect.Value, parents visited.Set) int {
	n := 0
	iter := rv.MapRange()
	for iter.Next() {
		key, sub := iter.Key(), iter.Value()
		if name, ok := stringKey(key); ok {
			if skipKey(name) {
				continue
			}
			if name == KeyItemsAddedAtIndexes || name == KeyItemsRemovedAtIndexes {
				sub = dedupIndexed(sub)
			}
		}
		n += ofChild(sub, parents)
	}
	return n
}

// ofChild applies the cycle guard before recursing into a container element.
func ofChild(sub reflect.Value, parents visited.Set) int {
	id, ok := visited.IdentityOf(sub)
	if !ok {
		return of(sub, parents)
	}
	if parents.Has(id) {
		return 0
	}
	return of(sub, parents.With(id))
}

func stringKey(key reflect.Value) (string, bool) {
	key = unwrap(key)
	if key.Kind() != reflect.String {
		return "", false
	}
	return key.String(), true
}

func skipKey(name string) bool {
	return strings.HasPrefix(name, InternalKeyPrefix) || name == KeyDeepDistance || name == KeyNewPath
}

// dedupIndexed rewrites {path: {index: item}} so every item identity appears
// once per path. Indexes are visited in ascending order, so the lowest index
// of a repeated item is the one kept. Items without identity are kept as is.
func dedupIndexed(sub reflect.Value) reflect.Value {
	sub = unwrap(sub)
	if sub.Kind() != reflect.Map {
		return sub
	}

	out := make(map[any]any, sub.Len())
	paths := sub.MapRange()
	for paths.Next() {
		byIndex := unwrap(paths.Value())
		if byIndex.Kind() != reflect.Map {
			out[interfaceOf(paths.Key())] = interfaceOf(paths.Value())
			continue
		}

		seen := make(map[visited.ID]struct{}, byIndex.Len())
		kept := make(map[any]any, byIndex.Len())
		for _, idx := range sortedKeys(byIndex) {
			item := byIndex.MapIndex(idx)
			if id, ok := visited.IdentityOf(item); ok {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
			}
			kept[interfaceOf(idx)] = interfaceOf(item)
		}
		out[interfaceOf(paths.Key())] = kept
	}
	return reflect.ValueOf(out)
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		fa, okA := conv.ValueFloat64(unwrap(a))
		fb, okB := conv.ValueFloat64(unwrap(b))
		if okA && okB {
			return cmp.Compare(fa, fb)
		}
		return strings.Compare(fmt.Sprint(interfaceOf(a)), fmt.Sprint(interfaceOf(b)))
	})
	return keys
}

func unwrap(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func interfaceOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}
