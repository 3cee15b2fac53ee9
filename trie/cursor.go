// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

// Cursor is a read-only position handle over the trie: a wood plus a
// position within it — the byte offset into a branch's kdata, or the
// item index within a node. Cursor operations never mutate the trie.
type Cursor[V any] struct {
	w       wood[V]
	atindex int
}

// Root returns a cursor positioned at the trie's root, or the zero
// Cursor and false if the trie is empty.
func (t *Trie[V]) Root() (Cursor[V], bool) {
	if t.root == nil {
		return Cursor[V]{}, false
	}
	return Cursor[V]{w: t.root}, true
}

// Letter returns the byte at the cursor's current position: the
// branch's kdata byte at atindex, or a node item's letter.
func (c Cursor[V]) Letter() byte {
	switch w := c.w.(type) {
	case *branch[V]:
		return w.kdata[c.atindex]
	case *node[V]:
		return w.items[c.atindex].letter
	}
	return 0
}

// Value reports whether the current position is terminal and, if so,
// its value. A branch position is only terminal at its last byte.
func (c Cursor[V]) Value() (val V, ok bool) {
	switch w := c.w.(type) {
	case *branch[V]:
		if c.atindex == len(w.kdata)-1 && w.hasVal {
			return w.val, true
		}
	case *node[V]:
		item := w.items[c.atindex]
		if item.flag&flagVal != 0 {
			return w.values.Get(item.v), true
		}
	}
	return val, false
}

// Choices writes the letters available at the cursor's current wood
// into buf (which must have capacity for at least the returned
// count) and returns that count: 1 for a branch, the item count for
// a node.
func (c Cursor[V]) Choices(buf []byte) int {
	switch w := c.w.(type) {
	case *branch[V]:
		buf[0] = w.kdata[c.atindex]
		return 1
	case *node[V]:
		n := 0
		for _, it := range w.items {
			buf[n] = it.letter
			n++
		}
		return n
	}
	return 0
}

// Seek moves the cursor to a specific letter at its current wood: a
// node lookup, or a comparison against the branch's current byte.
// Returns false (cursor unchanged) if letter is absent.
func (c Cursor[V]) Seek(letter byte) (Cursor[V], bool) {
	switch w := c.w.(type) {
	case *branch[V]:
		if w.kdata[c.atindex] == letter {
			return c, true
		}
	case *node[V]:
		idx := w.find(letter)
		if idx >= 0 {
			return Cursor[V]{w: w, atindex: idx}, true
		}
	}
	return c, false
}

// SeekNext advances to the next sibling item in a node. Fails (and
// leaves the cursor unchanged) on a branch, which has no siblings.
func (c Cursor[V]) SeekNext() (Cursor[V], bool) {
	w, ok := c.w.(*node[V])
	if !ok {
		return c, false
	}
	if c.atindex+1 >= len(w.items) {
		return c, false
	}
	return Cursor[V]{w: w, atindex: c.atindex + 1}, true
}

// SeekAt is the positional variant of SeekNext: move directly to item
// index within the current node.
func (c Cursor[V]) SeekAt(index int) (Cursor[V], bool) {
	w, ok := c.w.(*node[V])
	if !ok {
		return c, false
	}
	if index < 0 || index >= len(w.items) {
		return c, false
	}
	return Cursor[V]{w: w, atindex: index}, true
}

// Forward descends one position: along a branch it advances atindex
// to the next byte; at a branch's last byte, or at a node item, it
// descends into the sub wood. Returns false (cursor unchanged) if
// there is nowhere to go.
func (c Cursor[V]) Forward() (Cursor[V], bool) {
	switch w := c.w.(type) {
	case *branch[V]:
		if c.atindex+1 < len(w.kdata) {
			return Cursor[V]{w: w, atindex: c.atindex + 1}, true
		}
		if w.sub == nil {
			return c, false
		}
		return Cursor[V]{w: w.sub}, true
	case *node[V]:
		item := w.items[c.atindex]
		if item.flag&flagSub == 0 {
			return c, false
		}
		return Cursor[V]{w: w.subs.Get(item.n)}, true
	}
	return c, false
}
