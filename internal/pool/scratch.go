// Package pool provides reusable float64 scratch buffers for batch distance
// computation. Uses sync.Pool for automatic memory reuse.
package pool

import "sync"

const (
	// DefaultCapacity is the initial capacity of pooled buffers.
	DefaultCapacity = 1024

	// MaxRetained is the largest capacity returned to the pool. Larger
	// buffers are dropped so one huge batch does not pin memory.
	MaxRetained = 1 << 20
)

// Scratch is a reusable buffer.
type Scratch struct {
	Buf []float64
}

var scratchPool = sync.Pool{
	New: func() interface{} {
		return &Scratch{Buf: make([]float64, 0, DefaultCapacity)}
	},
}

// Get retrieves a Scratch whose Buf has length n.
func Get(n int) *Scratch {
	s := scratchPool.Get().(*Scratch)
	if cap(s.Buf) < n {
		s.Buf = make([]float64, n)
	}
	s.Buf = s.Buf[:n]
	return s
}

// Put returns a Scratch to the pool for reuse.
func Put(s *Scratch) {
	if s == nil || cap(s.Buf) > MaxRetained {
		return
	}
	s.Buf = s.Buf[:0]
	scratchPool.Put(s)
}
