// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package items

import "testing"

func TestPoolAppendGetSet(t *testing.T) {
	var p Pool[string]

	i0 := p.Append("a")
	i1 := p.Append("b")
	i2 := p.Append("c")

	if i0 != 0 || i1 != 1 || i2 != 2 {
		t.Fatalf("Append positions = %d,%d,%d, want 0,1,2", i0, i1, i2)
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}

	p.Set(1, "B")
	if p.Get(1) != "B" {
		t.Fatalf("Get(1) = %q, want B", p.Get(1))
	}
}

func TestPoolDeleteAtCompacts(t *testing.T) {
	var p Pool[int]
	for i := 0; i < 5; i++ {
		p.Append(i)
	}

	removed := p.DeleteAt(2)
	if removed != 2 {
		t.Fatalf("DeleteAt(2) = %d, want 2", removed)
	}
	if p.Len() != 4 {
		t.Fatalf("Len() after delete = %d, want 4", p.Len())
	}

	want := []int{0, 1, 3, 4}
	for i, w := range want {
		if p.Get(i) != w {
			t.Fatalf("Get(%d) = %d, want %d", i, p.Get(i), w)
		}
	}
}

func TestPoolReset(t *testing.T) {
	var p Pool[int]
	p.Append(1)
	p.Append(2)
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", p.Len())
	}
	p.Append(9)
	if p.Get(0) != 9 {
		t.Fatalf("Get(0) after reuse = %d, want 9", p.Get(0))
	}
}
