// Package deephash computes stable content hashes and rough lengths of
// arbitrary Go values.
//
// Two values with the same content hash to the same cache.Hash regardless of
// map iteration order or identity. Every hashed sub-value is memoized in a
// cache.LengthCache, together with its rough length: the number of atomic
// elements (numbers, strings, booleans, nils, date/time values) it contains.
//
// # Usage
//
//	c := cache.NewLengthCache()
//	h, err := deephash.New().Hash(value, c)
//	entry, _, _ := c.Get(h) // entry.Length is the rough length
//
// # Options
//
//	deephash.New(deephash.IgnoreStringCase(), deephash.SignificantDigits(3))
//
// Hashing is cycle safe: a reference value met again on its own path hashes
// to a fixed marker and contributes no length.
package deephash
