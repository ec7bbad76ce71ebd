// Package pool provides type-safe object pooling for help and usage
// rendering, so repeated output reuses the same buffers.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a generic wrapper around sync.Pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // Optional reset function called before reuse
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// maxBufferSize keeps one huge help page from pinning memory.
const maxBufferSize = 64 << 10

var buffers = NewPoolWithReset(
	func() *bytes.Buffer { return &bytes.Buffer{} },
	func(b *bytes.Buffer) { b.Reset() },
)

// GetBuffer returns an empty buffer.
func GetBuffer() *bytes.Buffer { return buffers.Get() }

// PutBuffer returns b to the shared pool. Oversized buffers are dropped.
func PutBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxBufferSize {
		return
	}
	buffers.Put(b)
}
