package cache

import (
	"errors"
	"fmt"
)

// ErrPurged is returned by every LengthCache method once Discard was called.
var ErrPurged = errors.New("length cache purged")

// Hash is a stable content hash.
type Hash uint64

func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Entry is what the cache remembers for one hash.
type Entry struct {
	// Item is the first value stored under the hash.
	Item any
	// Length is the rough length of Item.
	Length int
}
