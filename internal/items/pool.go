// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package items implements a densely packed, position-addressed
// growable array, used for the subs/values pools backing a trie Node.
package items

// Pool is a dense, position-addressed array of payload T.
//
// Unlike a byte-keyed sparse array, a Pool has no notion of a 0..255
// key space: the index IS the address. Appending and deleting keep
// the array free of holes, so every position less than Len() is
// valid and occupied.
type Pool[T any] struct {
	Items []T
}

// Len returns the number of items in the pool.
func (p *Pool[T]) Len() int {
	return len(p.Items)
}

// Get returns the item at position i. Callers must ensure i is in range.
func (p *Pool[T]) Get(i int) T {
	return p.Items[i]
}

// Set overwrites the item at position i. Callers must ensure i is in range.
func (p *Pool[T]) Set(i int, v T) {
	p.Items[i] = v
}

// Append adds v at the end of the pool and returns its new position.
func (p *Pool[T]) Append(v T) (pos int) {
	pos = len(p.Items)
	p.Items = append(p.Items, v)
	return pos
}

// DeleteAt removes the item at position i, shifting the tail left by
// one and zeroing the vacated slot. Every NodeItem.n/.v greater than i
// must be decremented by the caller, since this pool keeps no
// back-references to the NodeItem entries that index into it.
func (p *Pool[T]) DeleteAt(i int) (value T) {
	value = p.Items[i]

	var zero T
	nl := len(p.Items) - 1
	copy(p.Items[i:], p.Items[i+1:])
	p.Items[nl] = zero
	p.Items = p.Items[:nl]

	return value
}

// Reset empties the pool but keeps the backing storage for reuse.
func (p *Pool[T]) Reset() {
	clear(p.Items)
	p.Items = p.Items[:0]
}
