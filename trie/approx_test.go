// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import "testing"

func TestApproxLevenshtein(t *testing.T) {
	tr := New[int]()
	for i, k := range []string{"sitting", "kitten", "kitchen", "mitten", "sun"} {
		tr.Insert([]byte(k), i)
	}

	results := tr.Approx([]byte("kitten"), 2, 0)

	got := map[string]int{}
	for _, r := range results {
		got[string(r.Key)] = r.Dist
	}

	want := map[string]int{"kitten": 0, "mitten": 1}
	if len(got) != len(want) {
		t.Fatalf("Approx(kitten,2,0) = %v, want %v", got, want)
	}
	for k, d := range want {
		if gd, ok := got[k]; !ok || gd != d {
			t.Fatalf("Approx(kitten,2,0)[%q] = (%d,%v), want %d", k, gd, ok, d)
		}
	}
}

func TestApproxSuffixMode(t *testing.T) {
	tr := New[int]()
	for i, k := range []string{"mars", "marsupia", "marsupiata", "man"} {
		tr.Insert([]byte(k), i)
	}

	results := tr.Approx([]byte("mars"), 0, 4)

	type hit struct {
		dist   int
		suffix bool
	}
	got := map[string]hit{}
	for _, r := range results {
		got[string(r.Key)] = hit{r.Dist, r.Suffix}
	}

	if h, ok := got["mars"]; !ok || h.dist != 0 || h.suffix {
		t.Fatalf("Approx result for mars = %+v, want dist=0 suffix=false", h)
	}
	if h, ok := got["marsupia"]; !ok || h.dist != 0 || !h.suffix {
		t.Fatalf("Approx result for marsupia = %+v, want dist=0 suffix=true", h)
	}
	if _, ok := got["marsupiata"]; ok {
		t.Fatalf("marsupiata must be excluded (suffix length 6 > maxsuflen 4), got %+v", got)
	}
	if _, ok := got["man"]; ok {
		t.Fatalf("man must be excluded (distance exceeds maxlev 0), got %+v", got)
	}
}
