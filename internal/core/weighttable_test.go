package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightTable_CombinesTypeAndAgilityTerms(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)

	w := NewWeights()
	w.Type["Sfb"] = -10
	w.Finger[kb.Finger(5)] = 2

	wt := NewWeightTable(kb, c, w)

	label := c.Label(0, 20, 5)
	require.Equal(t, "Sfb", label)

	want := w.Type["Sfb"] +
		w.Finger[kb.Finger(0)] +
		w.Finger[kb.Finger(20)] +
		w.Finger[kb.Finger(5)]
	assert.InDelta(t, want, wt.Lookup(0, 20, 5), 1e-9)
}

func TestWeightTable_ZeroWeightsGiveZeroTable(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	w := NewWeights()
	wt := NewWeightTable(kb, c, w)
	assert.Zero(t, wt.Lookup(0, 1, 2))
}
