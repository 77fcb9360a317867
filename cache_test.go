// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPrimeGte(t *testing.T) {
	for n, p := range map[int]int{0: 3, 1: 3, 2: 3, 3: 3, 9: 11, 14: 17, 24: 29, 121: 127, 169: 173, 1000: 1009} {
		assert.Equal(t, p, primeGte(n), "prime after %d", n)
	}
}

func TestCacheSize(t *testing.T) {
	m := newTestManager(t, 4, Cachesize(100))
	assert.Equal(t, 101, len(m.cache.table))
	assert.True(t, oddPrime(len(m.cache.table)))
}
