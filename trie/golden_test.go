// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/radixkv/radixkv/internal/golden"
)

// TestAgainstGolden drives both the production trie and the naive
// golden.GoldTrie reference through the same randomized sequence of
// inserts and deletes, checking Get and the sorted key enumeration
// agree after every step.
func TestAgainstGolden(t *testing.T) {
	prng := rand.New(rand.NewPCG(1, 2))

	tr := New[int]()
	var gold golden.GoldTrie[int]

	keys := golden.RandomKeys(prng, 300, 1, 12)

	for i, k := range keys {
		tr.Insert(k, i)
		gold.Insert(k, i)

		if v, ok := tr.Get(k); !ok || v != i {
			t.Fatalf("after insert %q: Get = (%v,%v), want (%d,true)", k, v, ok, i)
		}
	}

	gotAll := tr.All()
	slices.SortFunc(gotAll, bytes.Compare)
	wantAll := gold.AllSorted()

	if len(gotAll) != len(wantAll) {
		t.Fatalf("All() has %d keys, golden has %d", len(gotAll), len(wantAll))
	}
	for i := range wantAll {
		if !bytes.Equal(gotAll[i], wantAll[i]) {
			t.Fatalf("All()[%d] = %q, want %q", i, gotAll[i], wantAll[i])
		}
	}

	// delete half, in a different order than inserted.
	toDelete := slices.Clone(keys)
	prng.Shuffle(len(toDelete), func(i, j int) { toDelete[i], toDelete[j] = toDelete[j], toDelete[i] })
	toDelete = toDelete[:len(toDelete)/2]

	for _, k := range toDelete {
		gv, gok := gold.Delete(k)
		tv, tok := tr.Delete(k)
		if gok != tok || (gok && gv != tv) {
			t.Fatalf("Delete(%q) = (%v,%v), golden = (%v,%v)", k, tv, tok, gv, gok)
		}
	}

	for _, k := range keys {
		gv, gok := gold.Get(k)
		tv, tok := tr.Get(k)
		if gok != tok || (gok && gv != tv) {
			t.Fatalf("Get(%q) = (%v,%v), golden = (%v,%v)", k, tv, tok, gv, gok)
		}
	}
}

// TestAgainstGoldenApprox cross-checks the pruned Levenshtein walk
// against the brute-force reference for a batch of random keys and
// queries.
func TestAgainstGoldenApprox(t *testing.T) {
	prng := rand.New(rand.NewPCG(7, 9))

	tr := New[int]()
	var gold golden.GoldTrie[int]

	keys := golden.RandomKeys(prng, 80, 2, 8)
	for i, k := range keys {
		tr.Insert(k, i)
		gold.Insert(k, i)
	}

	for q := 0; q < 20; q++ {
		query := golden.RandomKey(prng, 2, 8)
		maxLev := prng.IntN(3)
		maxSuf := prng.IntN(4)

		gotSet := map[string]int{}
		for _, r := range tr.Approx(query, maxLev, maxSuf) {
			gotSet[string(r.Key)] = r.Dist
		}

		wantSet := map[string]int{}
		for _, r := range gold.Approx(query, maxLev, maxSuf) {
			wantSet[string(r.Key)] = r.Dist
		}

		if len(gotSet) != len(wantSet) {
			t.Fatalf("query %q maxlev=%d maxsuf=%d: got %v, want %v", query, maxLev, maxSuf, gotSet, wantSet)
		}
		for k, d := range wantSet {
			if gd, ok := gotSet[k]; !ok || gd != d {
				t.Fatalf("query %q maxlev=%d maxsuf=%d: got[%q]=(%d,%v), want %d", query, maxLev, maxSuf, k, gd, ok, d)
			}
		}
	}
}
