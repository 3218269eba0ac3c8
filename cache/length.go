package cache

import (
	"reflect"
	"sync/atomic"

	"github.com/hupe1980/deepdist/internal/visited"
)

// LengthCache memoizes rough lengths by content hash.
type LengthCache struct {
	entries    map[Hash]Entry
	byIdentity map[visited.ID]binding
	byValue    map[any]Hash
	discarded  bool

	hits   atomic.Int64
	misses atomic.Int64
}

// binding keeps the bound value reachable so its address cannot be reused
// by another value while the identity is indexed.
type binding struct {
	hash Hash
	ref  any
}

// NewLengthCache creates an empty cache.
func NewLengthCache() *LengthCache {
	return &LengthCache{
		entries:    make(map[Hash]Entry),
		byIdentity: make(map[visited.ID]binding),
		byValue:    make(map[any]Hash),
	}
}

// Lookup finds v by identity, or by value for comparable values without
// identity (numbers, strings, arrays and structs held by value).
// Non-comparable values without identity always miss; hash them and use Get.
//
// A value hit returns the hash of the first equal value stored. Equal values
// share their length, but the hash may differ under hash options that tell
// them apart (0.0 and -0.0).
func (c *LengthCache) Lookup(v any) (Hash, Entry, bool, error) {
	if c.discarded {
		return 0, Entry{}, false, ErrPurged
	}
	if id, ok := visited.Identity(v); ok {
		if b, ok := c.byIdentity[id]; ok {
			c.hits.Add(1)
			return b.hash, c.entries[b.hash], true, nil
		}
	} else if valueKey(v) {
		if h, ok := c.byValue[v]; ok {
			c.hits.Add(1)
			return h, c.entries[h], true, nil
		}
	}
	c.misses.Add(1)
	return 0, Entry{}, false, nil
}

// Get returns the entry stored under h.
func (c *LengthCache) Get(h Hash) (Entry, bool, error) {
	if c.discarded {
		return Entry{}, false, ErrPurged
	}
	e, ok := c.entries[h]
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return e, ok, nil
}

// Put stores item under h unless h is already present. The first item
// stored under a hash stays its representative.
func (c *LengthCache) Put(h Hash, item any, length int) error {
	if c.discarded {
		return ErrPurged
	}
	if _, ok := c.entries[h]; !ok {
		c.entries[h] = Entry{Item: item, Length: length}
	}
	if id, ok := visited.Identity(item); ok {
		if _, bound := c.byIdentity[id]; !bound {
			c.byIdentity[id] = binding{hash: h, ref: item}
		}
	} else if valueKey(item) {
		if _, bound := c.byValue[item]; !bound {
			c.byValue[item] = h
		}
	}
	return nil
}

// valueKey reports whether v can key the value index. NaN never equals
// itself and would add a fresh entry on every Put.
func valueKey(v any) bool {
	if v == nil {
		return true
	}
	if !reflect.ValueOf(v).Comparable() {
		return false
	}
	return v == v
}

// Discard drops all entries. The cache cannot be used afterwards.
func (c *LengthCache) Discard() {
	c.entries = nil
	c.byIdentity = nil
	c.byValue = nil
	c.discarded = true
}

// Discarded reports whether Discard was called.
func (c *LengthCache) Discarded() bool {
	return c.discarded
}

// Len returns the number of distinct hashes stored.
func (c *LengthCache) Len() int {
	return len(c.entries)
}

// Stats returns lookup statistics.
func (c *LengthCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
