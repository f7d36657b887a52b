package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffectedIndex_ContainsOnlyTriplesTouchingEitherPosition(t *testing.T) {
	idx := BuildAffectedIndex(4)
	for _, e := range idx.Of(1, 2) {
		touches := e.P1 == 1 || e.P1 == 2 || e.P2 == 1 || e.P2 == 2 || e.P3 == 1 || e.P3 == 2
		assert.True(t, touches, "triple %+v should touch position 1 or 2", e)
	}
}

func TestAffectedIndex_ExcludesUnaffectedTriples(t *testing.T) {
	idx := BuildAffectedIndex(4)
	entries := idx.Of(1, 2)
	for _, e := range entries {
		assert.False(t, e.P1 == 0 && e.P2 == 0 && e.P3 == 3, "triple (0,0,3) never touches 1 or 2")
	}
}

func TestAffectedIndex_SymmetricInPairOrder(t *testing.T) {
	idx := BuildAffectedIndex(5)
	a := idx.Of(1, 3)
	b := idx.Of(3, 1)
	assert.ElementsMatch(t, a, b)
}

func TestAffectedIndex_CoversAllTriplesAcrossAllPairs(t *testing.T) {
	n := 3
	idx := BuildAffectedIndex(n)
	touched := make(map[[3]int]bool)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for _, e := range idx.Of(i, j) {
				touched[[3]int{e.P1, e.P2, e.P3}] = true
			}
		}
	}
	// Every triple that isn't entirely disjoint from {i,j} for some pair
	// should be covered; with n=3 every triple touches at least one
	// position, and every position belongs to some pair, so every triple
	// is covered by some pair.
	assert.Equal(t, n*n*n, len(touched))
}
