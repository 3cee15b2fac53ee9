// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"github.com/radixkv/radixkv/internal/bitset"
	"github.com/radixkv/radixkv/internal/items"
)

// wood is the tagged union of the two trie element variants. Every
// edge or branching point in the trie is a *branch or a *node, never
// a bare interface value held by more than one parent.
type wood[V any] interface {
	isWood()
}

// branch is a compressed edge: an owned byte substring, an optional
// terminal value, and at most one child wood.
//
// A zero-length kdata is never legal: a branch of length 0 would
// carry no information and collapses by construction.
type branch[V any] struct {
	kdata  []byte
	val    V
	hasVal bool
	sub    wood[V]
}

func (*branch[V]) isWood() {}

// node is a branching point: a sorted, adaptively searched array of
// items, plus two densely packed pools for child wood and terminal
// values. size is len(items); size is never 0 and, once reached via
// deletion, never 1 (a 1-item node converts back to a branch).
type node[V any] struct {
	items    []nodeItem
	subs     items.Pool[wood[V]]
	values   items.Pool[V]
	strategy strategy

	// present mirrors the letters held in items: bit c is set iff some
	// item has letter c. Gives find an O(1) miss/hit test ahead of the
	// NDX/LIN/BIN/NAT dispatch and, on a miss, the insertion index via
	// Rank0; a hit still goes through the dispatch.
	present bitset.BitSet256
}

func (*node[V]) isWood() {}
