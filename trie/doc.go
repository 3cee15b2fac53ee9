// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package trie implements a compressed radix trie (PATRICIA-style)
// over raw byte-string keys.
//
// Every edge of the trie is a "wood" value, one of two variants:
//
//   - Branch, a compressed edge carrying a byte substring, an
//     optional terminal value and at most one child.
//   - Node, a branching point holding a sorted, adaptively searched
//     array of items plus two densely packed pools for child wood
//     and terminal values.
//
// The trie supports insert, lookup, delete, in-order cursor
// traversal and an approximate (Levenshtein, optionally
// suffix-extended) search.
package trie
