// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

// delete removes key, returning its value and true if it existed.
// The lookup must terminate FOUND for anything to happen; any other
// status means the key was never present.
func (t *Trie[V]) delete(key []byte) (old V, existed bool) {
	l := lookup[V](t.root, key)
	if l.status != statusFound {
		return old, false
	}

	switch w := l.w.(type) {
	case *branch[V]:
		old = w.val

		if w.sub != nil {
			// terminal on a branch with a child: clear the value and
			// try to merge with the child.
			var zero V
			w.hasVal = false
			w.val = zero
			t.tryMerge(w)
			return old, true
		}

		parent := l.ancestorCrumb(0)
		if parent == nil {
			// sole wood in the trie.
			t.root = nil
			t.freeBranch(w)
			return old, true
		}

		t.unlinkLeafBranch(l, parent, w)
		return old, true

	case *node[V]:
		item := w.items[l.atindex]
		old = w.values.Get(item.v)
		t.clearNodeItemVal(w, l.atindex)
		t.shrinkIfNeeded(l.ancestorCrumb(0), w)
		return old, true
	}

	return old, false
}

// unlinkLeafBranch removes a terminal, childless branch from its
// parent, then (when the parent was a node that just shrank to one
// item) converts it to a branch and re-attempts the merge at the
// grandparent.
func (t *Trie[V]) unlinkLeafBranch(l *look[V], parent *crumb[V], w *branch[V]) {
	switch pw := parent.w.(type) {
	case *branch[V]:
		pw.sub = nil
		t.freeBranch(w)

	case *node[V]:
		idx := parent.index
		item := pw.items[idx]

		if item.flag&flagVal == 0 {
			t.deleteItemAt(pw, idx)
		} else {
			t.clearNodeItemSub(pw, idx)
		}
		t.freeBranch(w)

		t.shrinkIfNeeded(l.ancestorCrumb(1), pw)
	}
}

// clearNodeItemVal clears the VAL flag on items[idx], compacting the
// values pool and renumbering the remaining VAL indices. If the item
// also has no SUB, the item is removed from the array entirely.
func (t *Trie[V]) clearNodeItemVal(n *node[V], idx int) {
	item := n.items[idx]
	if item.flag&flagSub == 0 {
		t.deleteItemAt(n, idx)
		return
	}

	n.values.DeleteAt(item.v)
	for i := range n.items {
		if n.items[i].flag&flagVal != 0 && n.items[i].v > item.v {
			n.items[i].v--
		}
	}
	it := &n.items[idx]
	it.flag &^= flagVal
	it.v = 0
}

// clearNodeItemSub clears the SUB flag on items[idx] (whose item is
// known to still carry a VAL, so the item itself is kept), compacting
// the subs pool and renumbering the remaining SUB indices.
func (t *Trie[V]) clearNodeItemSub(n *node[V], idx int) {
	item := n.items[idx]
	n.subs.DeleteAt(item.n)
	for i := range n.items {
		if n.items[i].flag&flagSub != 0 && n.items[i].n > item.n {
			n.items[i].n--
		}
	}
	it := &n.items[idx]
	it.flag &^= flagSub
	it.n = 0
}

// shrinkIfNeeded converts n into a branch once it has shrunk to
// exactly one item, relinking it via parent (nil meaning the trie
// root) and, when that parent is a branch, attempting the
// Branch/Branch merge immediately afterward.
func (t *Trie[V]) shrinkIfNeeded(parent *crumb[V], n *node[V]) {
	if len(n.items) != 1 {
		return
	}

	b := t.nodeToBranch(n)
	t.setLink(parent, b)
	t.freeNode(n)

	if parent != nil {
		if pb, ok := parent.w.(*branch[V]); ok {
			t.tryMerge(pb)
		}
	}
}
