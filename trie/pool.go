// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"sync"
	"sync/atomic"
)

// pool is a type-safe wrapper around sync.Pool, specialized for
// reusing the wood values (*branch[V], *node[V]) allocated during
// structural rewrites. Live/allocated counters back Dump's allocation
// summary.
type pool[T any] struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

func newPool[T any](newT func() T) *pool[T] {
	p := &pool[T]{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return newT()
	}
	return p
}

// Get retrieves a T from the pool, or creates a new one if needed.
func (p *pool[T]) Get() T {
	p.currentLive.Add(1)
	return p.Pool.Get().(T)
}

// Put returns a T back to the pool for potential reuse.
func (p *pool[T]) Put(v T) {
	p.currentLive.Add(-1)
	p.Pool.Put(v)
}

// Stats returns the number of currently live (checked-out) values and
// the total number of values ever allocated by this pool.
func (p *pool[T]) Stats() (live int64, total int64) {
	return p.currentLive.Load(), p.totalAllocated.Load()
}
