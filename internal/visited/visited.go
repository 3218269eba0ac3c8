// Package visited tracks which reference values sit on the current
// recursion path.
//
// Set is persistent: With returns a new set that shares structure with the
// receiver, so sibling branches of a traversal never observe each other's
// entries and no reset is needed when a branch returns.
package visited

import (
	"reflect"
)

// ID identifies a reference value: a pointer, map, slice, or channel.
// Two slices are the same value only if they share data pointer, length and
// element type.
type ID struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
	typ  reflect.Type
}

// IdentityOf returns the identity of rv. ok is false for value kinds (ints,
// strings, structs held by value), nil references, and empty slices, none
// of which can form a cycle.
func IdentityOf(rv reflect.Value) (ID, bool) {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ID{}, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return ID{}, false
		}
		return ID{kind: rv.Kind(), ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return ID{}, false
		}
		return ID{kind: reflect.Slice, ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}, true
	default:
		return ID{}, false
	}
}

// Identity is IdentityOf for a plain value.
func Identity(v any) (ID, bool) {
	if v == nil {
		return ID{}, false
	}
	return IdentityOf(reflect.ValueOf(v))
}

// Set is an immutable set of identities. The zero value is empty.
type Set struct {
	head *node
}

type node struct {
	id   ID
	next *node
	size int
}

// With returns a set containing the receiver's identities and id.
// The receiver is unchanged.
func (s Set) With(id ID) Set {
	if s.Has(id) {
		return s
	}
	return Set{head: &node{id: id, next: s.head, size: s.Len() + 1}}
}

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	for n := s.head; n != nil; n = n.next {
		if n.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of identities in the set.
func (s Set) Len() int {
	if s.head == nil {
		return 0
	}
	return s.head.size
}
