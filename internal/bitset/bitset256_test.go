// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import "testing"

func TestSetClearTest(t *testing.T) {
	var b BitSet256
	b.Set(5)
	b.Set(200)

	if !b.Test(5) || !b.Test(200) {
		t.Fatalf("expected 5 and 200 set")
	}
	if b.Test(6) {
		t.Fatalf("bit 6 should not be set")
	}

	b.Clear(5)
	if b.Test(5) {
		t.Fatalf("bit 5 should be cleared")
	}
}

func TestRank0(t *testing.T) {
	var b BitSet256
	for _, bit := range []uint{2, 5, 9, 100} {
		b.Set(bit)
	}

	cases := []struct {
		idx  uint
		want int
	}{
		{2, 0},
		{5, 1},
		{9, 2},
		{99, 2},
		{100, 3},
		{255, 3},
	}
	for _, c := range cases {
		if got := b.Rank0(c.idx); got != c.want {
			t.Fatalf("Rank0(%d) = %d, want %d", c.idx, got, c.want)
		}
	}
}

func TestFirstNextSet(t *testing.T) {
	var b BitSet256
	b.Set(10)
	b.Set(64)
	b.Set(200)

	first, ok := b.FirstSet()
	if !ok || first != 10 {
		t.Fatalf("FirstSet() = (%d,%v), want (10,true)", first, ok)
	}

	next, ok := b.NextSet(11)
	if !ok || next != 64 {
		t.Fatalf("NextSet(11) = (%d,%v), want (64,true)", next, ok)
	}

	next, ok = b.NextSet(65)
	if !ok || next != 200 {
		t.Fatalf("NextSet(65) = (%d,%v), want (200,true)", next, ok)
	}

	if _, ok := b.NextSet(201); ok {
		t.Fatalf("NextSet(201) should report no more bits")
	}
}

func TestIsEmptySize(t *testing.T) {
	var b BitSet256
	if !b.IsEmpty() {
		t.Fatalf("zero value should be empty")
	}
	b.Set(3)
	b.Set(150)
	if b.IsEmpty() {
		t.Fatalf("non-zero bitset should not be empty")
	}
	if got := b.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2", got)
	}
}
