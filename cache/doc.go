// Package cache provides the rough-length cache shared by a distance session.
//
// LengthCache maps a content hash to a representative item and its memoized
// rough length (the number of atomic elements the item is made of). Entries
// are written once and never recomputed. Reference values (maps, slices,
// pointers) are additionally indexed by identity so they can be found again
// without rehashing.
//
// A session may Discard the cache to release memory; every later lookup
// fails with ErrPurged.
//
// LengthCache is not safe for concurrent mutation. Stats may be read from
// other goroutines.
package cache
