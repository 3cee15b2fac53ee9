// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

// insert dispatches on the terminal lookup status, per the trie's
// insert table: EMPTY seeds the root, FOUND replaces in place, and
// the remaining statuses each perform one structural rewrite.
func (t *Trie[V]) insert(key []byte, val V) (old V, replaced bool) {
	l := lookup[V](t.root, key)

	switch l.status {
	case statusEmpty:
		t.root = t.newBranch(key)
		b := t.root.(*branch[V])
		b.hasVal = true
		b.val = val
		return old, false

	case statusFound:
		switch w := l.w.(type) {
		case *branch[V]:
			old = w.val
			w.val = val
			return old, true
		case *node[V]:
			item := &w.items[l.atindex]
			old = w.values.Get(item.v)
			w.values.Set(item.v, val)
			return old, true
		}

	case statusNoVal:
		switch w := l.w.(type) {
		case *branch[V]:
			w.hasVal = true
			w.val = val
		case *node[V]:
			item := &w.items[l.atindex]
			item.v = w.values.Append(val)
			item.flag |= flagVal
		}
		return old, false

	case statusNodeNoItem:
		w := l.w.(*node[V])
		insIdx := -1 - l.atindex
		letter := l.key[l.kpos]
		item := t.buildItem(w, letter, l.key[l.kpos+1:], true, val, nil)
		w.insertItemAt(insIdx, item)
		return old, false

	case statusNodeNoSub:
		w := l.w.(*node[V])
		item := &w.items[l.atindex]
		tail := l.key[l.kpos:]
		b := t.newBranch(tail)
		b.hasVal = true
		b.val = val
		item.n = w.subs.Append(wood[V](b))
		item.flag |= flagSub
		return old, false

	case statusBranchOver:
		w := l.w.(*branch[V])
		tail := l.key[l.kpos:]
		b := t.newBranch(tail)
		b.hasVal = true
		b.val = val
		w.sub = b
		return old, false

	case statusBranchInto:
		t.cutBranch(l, val)
		return old, false

	case statusBranchDiff:
		t.forkBranch(l, val)
		return old, false
	}

	return old, false
}

// cutBranch handles statusBranchInto: the query exhausts mid-branch,
// so the branch is split into a head carrying the new value and a
// tail carrying everything the source branch used to hold.
func (t *Trie[V]) cutBranch(l *look[V], val V) {
	src := l.w.(*branch[V])
	pos := l.atindex

	tail := t.newBranch(src.kdata[pos:])
	tail.hasVal = src.hasVal
	tail.val = src.val
	tail.sub = src.sub

	head := t.newBranch(src.kdata[:pos])
	head.hasVal = true
	head.val = val
	head.sub = tail

	t.setLink(l.ancestorCrumb(0), head)
	t.freeBranch(src)
}

// forkBranch handles statusBranchDiff: the query and the branch
// diverge at pos, so the branch is split into a head, a fork node
// holding the two diverging single-byte items, and the original
// tail/new tail hanging off those items.
func (t *Trie[V]) forkBranch(l *look[V], val V) {
	src := l.w.(*branch[V])
	pos := l.atindex

	oldC := src.kdata[pos]
	newC := l.key[l.kpos+pos]

	fork := t.newNode()

	oldItem := t.buildItem(fork, oldC, src.kdata[pos+1:], src.hasVal, src.val, src.sub)
	newItem := t.buildItem(fork, newC, l.key[l.kpos+pos+1:], true, val, nil)

	if oldC < newC {
		fork.items = append(fork.items, oldItem, newItem)
	} else {
		fork.items = append(fork.items, newItem, oldItem)
	}
	fork.present.Set(uint(oldC))
	fork.present.Set(uint(newC))
	fork.selectStrategy()

	var head *branch[V]
	if pos == 0 {
		// no shared prefix: the fork node replaces src directly.
		t.setLink(l.ancestorCrumb(0), fork)
		t.freeBranch(src)
		return
	}

	head = t.newBranch(src.kdata[:pos])
	head.hasVal = false
	head.sub = fork

	t.setLink(l.ancestorCrumb(0), head)
	t.freeBranch(src)
}
