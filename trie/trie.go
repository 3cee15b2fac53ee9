// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"slices"

	"github.com/radixkv/radixkv/internal/bitset"
)

// Trie is a compressed radix trie over raw byte-string keys, holding
// an optional root wood. Create one with New: the zero Trie has no
// branch/node pools, so its first Insert panics.
//
// A Trie is not safe for concurrent mutation; callers that share one
// across goroutines must serialize Insert/Delete themselves (the
// server package does this by construction: a single cooperative
// scheduler only ever mutates from within one command task at a
// time).
type Trie[V any] struct {
	root wood[V]

	branches *pool[*branch[V]]
	nodes    *pool[*node[V]]
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{
		branches: newPool(func() *branch[V] { return new(branch[V]) }),
		nodes:    newPool(func() *node[V] { return new(node[V]) }),
	}
}

func (t *Trie[V]) newBranch(kdata []byte) *branch[V] {
	b := t.branches.Get()
	b.kdata = append(b.kdata[:0], kdata...)
	var zero V
	b.val = zero
	b.hasVal = false
	b.sub = nil
	return b
}

func (t *Trie[V]) newNode() *node[V] {
	return t.nodes.Get()
}

func (t *Trie[V]) freeBranch(b *branch[V]) {
	b.kdata = b.kdata[:0]
	var zero V
	b.val = zero
	b.hasVal = false
	b.sub = nil
	t.branches.Put(b)
}

func (t *Trie[V]) freeNode(n *node[V]) {
	n.items = n.items[:0]
	n.subs.Reset()
	n.values.Reset()
	n.strategy = strategyLIN
	n.present = bitset.BitSet256{}
	t.nodes.Put(n)
}

// Get reports whether key is present and, if so, its value.
func (t *Trie[V]) Get(key []byte) (val V, ok bool) {
	l := lookup[V](t.root, key)
	switch l.status {
	case statusFound:
		return valueOf(l)
	default:
		return val, false
	}
}

// valueOf extracts the terminal value at a FOUND look.
func valueOf[V any](l *look[V]) (V, bool) {
	switch w := l.w.(type) {
	case *branch[V]:
		return w.val, true
	case *node[V]:
		item := w.items[l.atindex]
		return w.values.Get(item.v), true
	default:
		var zero V
		return zero, false
	}
}

// Insert adds or replaces key's value, returning the previous value
// and true if one existed. The trie takes ownership of val; the
// caller is responsible for disposing of the returned previous value.
func (t *Trie[V]) Insert(key []byte, val V) (old V, replaced bool) {
	return t.insert(key, val)
}

// Delete removes key, returning its value and true if it existed. The
// caller is responsible for disposing of the returned value.
func (t *Trie[V]) Delete(key []byte) (old V, existed bool) {
	return t.delete(key)
}

// All returns every key in the trie, in ascending lexicographic
// order, via a recursive in-order walk of the wood.
func (t *Trie[V]) All() [][]byte {
	var out [][]byte
	if t.root == nil {
		return out
	}

	var walk func(w wood[V], prefix []byte)
	walk = func(w wood[V], prefix []byte) {
		switch n := w.(type) {
		case *branch[V]:
			full := append(slices.Clone(prefix), n.kdata...)
			if n.hasVal {
				out = append(out, full)
			}
			if n.sub != nil {
				walk(n.sub, full)
			}
		case *node[V]:
			for _, it := range n.items {
				full := append(slices.Clone(prefix), it.letter)
				if it.flag&flagVal != 0 {
					out = append(out, full)
				}
				if it.flag&flagSub != 0 {
					walk(n.subs.Get(it.n), full)
				}
			}
		}
	}

	walk(t.root, nil)
	return out
}
