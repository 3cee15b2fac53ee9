// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import "bytes"

// ApproxResult is one hit from an approximate search: the matched
// key, its value, the edit distance at which it was found, and
// whether it was reached via suffix-mode (after the query was fully
// consumed).
type ApproxResult[V any] struct {
	Key    []byte
	Val    V
	Dist   int
	Suffix bool
}

// Approx enumerates every key within maxLev edits of query
// (Levenshtein distance), plus, when maxSuf > 0, every key formed by
// extending a minimum-distance prefix match of query with up to
// maxSuf further bytes. Results are emitted in traversal order, not
// sorted by distance. The trie must not be mutated while a search is
// in progress.
func (t *Trie[V]) Approx(query []byte, maxLev, maxSuf int) []ApproxResult[V] {
	if t.root == nil {
		return nil
	}

	row0 := make([]int, len(query)+1)
	for i := range row0 {
		row0[i] = i
	}

	var out []ApproxResult[V]
	walkApprox(t.root, query, maxLev, maxSuf, nil, row0, &out)
	return out
}

// nextRow extends the Levenshtein DP row by one descended byte c.
func nextRow(prev []int, query []byte, c byte) []int {
	row := make([]int, len(prev))
	row[0] = prev[0] + 1

	for j := 1; j < len(prev); j++ {
		cost := 1
		if query[j-1] == c {
			cost = 0
		}
		del := prev[j] + 1
		ins := row[j-1] + 1
		sub := prev[j-1] + cost
		row[j] = min(del, min(ins, sub))
	}
	return row
}

func rowMin(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// walkApprox is the pruned depth-first Levenshtein walk, active while
// the query has not yet been fully consumed on the current path.
func walkApprox[V any](w wood[V], query []byte, maxLev, maxSuf int, prefix []byte, row []int, out *[]ApproxResult[V]) {
	switch n := w.(type) {
	case *branch[V]:
		curRow := row
		curPrefix := prefix

		for i, c := range n.kdata {
			curRow = nextRow(curRow, query, c)
			if rowMin(curRow) > maxLev {
				return
			}
			curPrefix = append(curPrefix, c)

			absDepth := len(prefix) + i + 1
			if absDepth != len(query) {
				continue
			}

			d := curRow[len(query)]
			if i == len(n.kdata)-1 {
				if n.hasVal && d <= maxLev {
					*out = append(*out, ApproxResult[V]{Key: bytes.Clone(curPrefix), Val: n.val, Dist: d})
				}
				if maxSuf > 0 && d <= maxLev && n.sub != nil {
					walkSuffix(n.sub, maxSuf, 0, d, curPrefix, out)
				}
			} else if maxSuf > 0 && d <= maxLev {
				walkSuffixBranchBody(n.kdata[i+1:], n.hasVal, n.val, n.sub, maxSuf, 0, d, curPrefix, out)
			}
			return
		}

		if n.sub != nil {
			walkApprox(n.sub, query, maxLev, maxSuf, curPrefix, curRow, out)
		}

	case *node[V]:
		for _, it := range n.items {
			c := it.letter
			nrow := nextRow(row, query, c)
			if rowMin(nrow) > maxLev {
				continue
			}

			childPrefix := append(bytes.Clone(prefix), c)
			absDepth := len(prefix) + 1

			if absDepth == len(query) {
				d := nrow[len(query)]
				if it.flag&flagVal != 0 && d <= maxLev {
					*out = append(*out, ApproxResult[V]{Key: bytes.Clone(childPrefix), Val: n.values.Get(it.v), Dist: d})
				}
				if maxSuf > 0 && d <= maxLev && it.flag&flagSub != 0 {
					walkSuffix(n.subs.Get(it.n), maxSuf, 0, d, childPrefix, out)
				}
				continue
			}

			if it.flag&flagSub != 0 {
				walkApprox(n.subs.Get(it.n), query, maxLev, maxSuf, childPrefix, nrow, out)
			}
		}
	}
}

// walkSuffix continues a search past query exhaustion, up to maxSuf
// further bytes, emitting every terminal encountered at the fixed
// distance recorded at suffix-mode entry.
func walkSuffix[V any](w wood[V], maxSuf, extra, dist int, prefix []byte, out *[]ApproxResult[V]) {
	if w == nil {
		return
	}

	switch n := w.(type) {
	case *branch[V]:
		walkSuffixBranchBody(n.kdata, n.hasVal, n.val, n.sub, maxSuf, extra, dist, prefix, out)

	case *node[V]:
		if extra >= maxSuf {
			return
		}
		for _, it := range n.items {
			childPrefix := append(bytes.Clone(prefix), it.letter)

			if it.flag&flagVal != 0 {
				*out = append(*out, ApproxResult[V]{
					Key: bytes.Clone(childPrefix), Val: n.values.Get(it.v), Dist: dist, Suffix: true,
				})
			}
			if it.flag&flagSub != 0 {
				walkSuffix(n.subs.Get(it.n), maxSuf, extra+1, dist, childPrefix, out)
			}
		}
	}
}

// walkSuffixBranchBody applies suffix-mode budget accounting to a
// branch's remaining kdata, shared by the true-branch case and the
// mid-branch boundary case in walkApprox.
func walkSuffixBranchBody[V any](kdata []byte, hasVal bool, val V, sub wood[V], maxSuf, extra, dist int, prefix []byte, out *[]ApproxResult[V]) {
	if extra+len(kdata) > maxSuf {
		return
	}

	newExtra := extra + len(kdata)
	newPrefix := append(bytes.Clone(prefix), kdata...)

	if hasVal {
		*out = append(*out, ApproxResult[V]{Key: bytes.Clone(newPrefix), Val: val, Dist: dist, Suffix: true})
	}
	if sub != nil {
		walkSuffix(sub, maxSuf, newExtra, dist, newPrefix, out)
	}
}
