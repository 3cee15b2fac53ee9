// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import "sort"

// itemFlag is a bitset over the states a nodeItem can carry.
type itemFlag uint8

const (
	flagVal itemFlag = 1 << iota // item has a terminal value, indexes node.values
	flagSub                      // item has a child wood, indexes node.subs
)

// on reports whether the item is occupied by either a value or a
// sub. flagVal|flagSub non-zero iff the item is "on"; there is no
// separate ON bit to keep in sync.
func (f itemFlag) on() bool { return f&(flagVal|flagSub) != 0 }

// nodeItem is one entry in a node's sorted items array: a key byte
// plus flags and positions into the node's subs/values pools.
type nodeItem struct {
	letter byte
	flag   itemFlag
	n      int // index into node.subs, valid iff flagSub set
	v      int // index into node.values, valid iff flagVal set
}

// strategy selects one of the four adaptive lookup algorithms over a
// node's sorted items array. Reselected after every insert/delete.
type strategy uint8

const (
	strategyNDX strategy = iota // direct-indexed, dense contiguous letters
	strategyLIN                 // linear scan, small arrays
	strategyBIN                 // standard binary search
	strategyNAT                 // density-narrowed ("natural") binary search
)

// linThreshold and binThreshold bound the array sizes for which LIN
// and plain BIN are preferred over density analysis. Retunable: only
// monotonicity (denser tables prefer NAT, small tables prefer LIN) is
// part of the contract.
const (
	linThreshold = 10
	binThreshold = 20
)

// natThreshold returns the density-coefficient cutoff T(size) above
// which NAT's narrowing pays off, piecewise-linear between sampled
// points from the reference benchmark: roughly 91 at size 10, 52 at
// 170, 9.5 at 315 and beyond.
func natThreshold(size int) float64 {
	switch {
	case size <= 10:
		return 91
	case size <= 170:
		// interpolate 91 -> 52 over [10,170]
		return 91 - (91-52)*float64(size-10)/160
	case size <= 315:
		// interpolate 52 -> 9.5 over [170,315]
		return 52 - (52-9.5)*float64(size-170)/145
	default:
		return 9.5
	}
}

// selectStrategy picks the cheapest correct lookup algorithm for the
// current items array and records it on the node.
func (n *node[V]) selectStrategy() {
	size := len(n.items)
	if size == 0 {
		n.strategy = strategyLIN
		return
	}

	first := n.items[0].letter
	last := n.items[size-1].letter

	if int(last)-int(first) == size-1 {
		n.strategy = strategyNDX
		return
	}

	if size <= linThreshold {
		n.strategy = strategyLIN
		return
	}

	if size < binThreshold {
		n.strategy = strategyBIN
		return
	}

	span := int(last) - int(first)
	if span == 0 {
		n.strategy = strategyBIN
		return
	}

	cf := 100 * float64(size-1) / float64(span)
	if cf > natThreshold(size) {
		n.strategy = strategyNAT
		return
	}

	n.strategy = strategyBIN
}

// find looks up letter c using the node's currently selected
// strategy. Returns the matching index, or -1-insertionIndex on miss
// so callers can splice a new item without a second search.
//
// present is tested first: a miss is answered in O(1) from the
// popcount rank of the bits below c, without touching the
// NDX/LIN/BIN/NAT dispatch below. A hit always falls through to that
// dispatch, which is guaranteed to find it.
func (n *node[V]) find(c byte) int {
	if !n.present.Test(uint(c)) {
		return -1 - (n.present.Rank0(uint(c)) + 1)
	}

	switch n.strategy {
	case strategyNDX:
		return n.findNDX(c)
	case strategyLIN:
		return n.findLIN(c)
	case strategyNAT:
		return n.findNAT(c)
	default:
		return n.findBIN(c)
	}
}

func (n *node[V]) findNDX(c byte) int {
	first := n.items[0].letter
	if c < first {
		return -1
	}
	idx := int(c) - int(first)
	if idx >= len(n.items) {
		return -1 - len(n.items)
	}
	return idx
}

func (n *node[V]) findLIN(c byte) int {
	for i, it := range n.items {
		if it.letter == c {
			return i
		}
		if it.letter > c {
			return -1 - i
		}
	}
	return -1 - len(n.items)
}

func (n *node[V]) findBIN(c byte) int {
	items := n.items
	i := sort.Search(len(items), func(i int) bool { return items[i].letter >= c })
	if i < len(items) && items[i].letter == c {
		return i
	}
	return -1 - i
}

// findNAT narrows [findex,tindex] using the density identities from
// the reference algorithm before falling back to a plain binary
// search over the narrowed range.
func (n *node[V]) findNAT(c byte) int {
	items := n.items
	findex, tindex := 0, len(items)-1

	first := items[findex].letter
	last := items[tindex].letter

	if c < first {
		return -1
	}
	if c > last {
		return -1 - len(items)
	}

	k := tindex - findex
	if span := int(last) - int(first); span > 0 && k > 0 {
		x := int(c)
		if x < int(first)+k {
			tindex = findex + x - int(first)
		} else if x > int(last)-k {
			findex = findex + k + x - int(last)
		}
		if tindex < findex {
			tindex = findex
		}
	}

	lo, hi := findex, tindex+1
	i := lo + sort.Search(hi-lo, func(i int) bool { return items[lo+i].letter >= c })
	if i < len(items) && items[i].letter == c {
		return i
	}
	return -1 - i
}
