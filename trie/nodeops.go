// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import "slices"

// buildItem constructs a nodeItem for letter. If tail is non-empty it
// is wrapped in a fresh branch (carrying hasVal/val/sub) and attached
// via SUB; otherwise hasVal/val and sub (if any) are attached
// directly to the item, since a zero-length branch is never legal.
func (t *Trie[V]) buildItem(n *node[V], letter byte, tail []byte, hasVal bool, val V, sub wood[V]) nodeItem {
	item := nodeItem{letter: letter}

	if len(tail) > 0 {
		b := t.newBranch(tail)
		b.hasVal = hasVal
		b.val = val
		b.sub = sub
		item.n = n.subs.Append(wood[V](b))
		item.flag |= flagSub
		return item
	}

	if hasVal {
		item.v = n.values.Append(val)
		item.flag |= flagVal
	}
	if sub != nil {
		item.n = n.subs.Append(sub)
		item.flag |= flagSub
	}
	return item
}

// insertItemAt splices item into n.items at position idx, maintaining
// sort order, and reselects the adaptive search strategy.
func (n *node[V]) insertItemAt(idx int, item nodeItem) {
	n.items = slices.Insert(n.items, idx, item)
	n.present.Set(uint(item.letter))
	n.selectStrategy()
}

// deleteItemAt removes n.items[idx], frees any VAL/SUB payload it
// held, compacts the subs/values pools and renumbers every remaining
// item's n/v that pointed past the removed slot, then reselects the
// adaptive search strategy.
func (t *Trie[V]) deleteItemAt(n *node[V], idx int) {
	item := n.items[idx]

	if item.flag&flagSub != 0 {
		n.subs.DeleteAt(item.n)
		for i := range n.items {
			if n.items[i].flag&flagSub != 0 && n.items[i].n > item.n {
				n.items[i].n--
			}
		}
	}
	if item.flag&flagVal != 0 {
		n.values.DeleteAt(item.v)
		for i := range n.items {
			if n.items[i].flag&flagVal != 0 && n.items[i].v > item.v {
				n.items[i].v--
			}
		}
	}

	n.items = slices.Delete(n.items, idx, idx+1)
	n.present.Clear(uint(item.letter))
	n.selectStrategy()
}

// setLink rewrites the link held by parent (or, when parent is nil,
// the trie's root pointer) so it points at newW instead. newW nil
// clears a node item's SUB flag without touching its pool slot
// (callers compact the pool themselves beforehand).
func (t *Trie[V]) setLink(parent *crumb[V], newW wood[V]) {
	if parent == nil {
		t.root = newW
		return
	}

	switch pw := parent.w.(type) {
	case *branch[V]:
		pw.sub = newW
	case *node[V]:
		item := &pw.items[parent.index]
		if newW == nil {
			item.flag &^= flagSub
			return
		}
		if item.flag&flagSub != 0 {
			pw.subs.Set(item.n, newW)
		} else {
			item.n = pw.subs.Append(newW)
			item.flag |= flagSub
		}
	}
}

// nodeToBranch converts a node with exactly one remaining item into a
// single-byte branch carrying that item's value/sub, per the
// Node-to-Branch shrink rule. Does not relink or free n; the caller
// does both once it has decided where the new branch goes.
func (t *Trie[V]) nodeToBranch(n *node[V]) *branch[V] {
	item := n.items[0]

	b := t.newBranch([]byte{item.letter})
	if item.flag&flagVal != 0 {
		b.hasVal = true
		b.val = n.values.Get(item.v)
	}
	if item.flag&flagSub != 0 {
		b.sub = n.subs.Get(item.n)
	}
	return b
}

// tryMerge implements the Branch/Branch merge rule: parent merges
// with its child iff parent carries no terminal value and the child
// is itself a branch. Repeats, since a merge can expose another
// mergeable grandchild.
func (t *Trie[V]) tryMerge(parent *branch[V]) {
	for !parent.hasVal {
		child, ok := parent.sub.(*branch[V])
		if !ok {
			return
		}

		parent.kdata = append(parent.kdata, child.kdata...)
		parent.hasVal = child.hasVal
		parent.val = child.val
		parent.sub = child.sub

		t.freeBranch(child)
	}
}
