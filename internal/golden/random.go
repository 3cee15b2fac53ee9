// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package golden

import (
	"math/rand/v2"
)

// alphabet is deliberately small and overlapping so that randomly
// generated keys exercise branch splits, forks and merges instead of
// degenerating into a flat set of single-character edges.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomKey returns a random byte string of length in [minLen,maxLen].
func RandomKey(prng *rand.Rand, minLen, maxLen int) []byte {
	n := minLen
	if maxLen > minLen {
		n += prng.IntN(maxLen - minLen + 1)
	}

	key := make([]byte, n)
	for i := range key {
		key[i] = alphabet[prng.IntN(len(alphabet))]
	}
	return key
}

// RandomKeys returns n distinct random keys.
func RandomKeys(prng *rand.Rand, n, minLen, maxLen int) [][]byte {
	set := make(map[string]struct{}, n)
	keys := make([][]byte, 0, n)

	for len(keys) < n {
		k := RandomKey(prng, minLen, maxLen)
		if _, ok := set[string(k)]; ok {
			continue
		}
		set[string(k)] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// RandomValue returns a random small byte-string value, used when V is []byte.
func RandomValue(prng *rand.Rand) []byte {
	return RandomKey(prng, 1, 16)
}
