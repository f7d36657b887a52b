package core

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout_SwapIsInvolution(t *testing.T) {
	l := NewLayout("test", []int{1, 2, 3, 4})
	l.Swap(0, 3)
	assert.Equal(t, []int{4, 2, 3, 1}, l.Keys())
	l.Swap(0, 3)
	assert.Equal(t, []int{1, 2, 3, 4}, l.Keys())
}

func TestLayout_SwapSamePositionNoop(t *testing.T) {
	l := NewLayout("test", []int{1, 2, 3})
	l.Swap(1, 1)
	assert.Equal(t, []int{1, 2, 3}, l.Keys())
}

func TestLayout_CloneIsIndependent(t *testing.T) {
	l := NewLayout("test", []int{1, 2, 3})
	clone := l.Clone()
	clone.Swap(0, 2)
	assert.Equal(t, []int{1, 2, 3}, l.Keys())
	assert.Equal(t, []int{3, 2, 1}, clone.Keys())
}

func TestRandomLayout_IsPermutationOfInput(t *testing.T) {
	chars := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng := rand.New(rand.NewPCG(1, 2))
	l := RandomLayout("r", chars, rng)

	assert.Equal(t, len(chars), l.N())
	seen := make(map[int]int)
	for _, c := range l.Keys() {
		seen[c]++
	}
	for _, c := range chars {
		assert.Equal(t, 1, seen[c], "character %d should appear exactly once", c)
	}
}

func TestLayout_Trigram(t *testing.T) {
	l := NewLayout("t", []int{10, 20, 30, 40})
	a, b, c := l.Trigram(3, 0, 1)
	assert.Equal(t, 40, a)
	assert.Equal(t, 10, b)
	assert.Equal(t, 20, c)
}
