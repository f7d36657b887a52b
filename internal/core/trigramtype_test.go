package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPredicates_MutuallyExclusiveOnAllCanonicalKeyboards(t *testing.T) {
	for name, kb := range map[string]*Keyboard{
		"ansi":     NewANSIKeyboard(),
		"iso":      NewISOKeyboard(),
		"anglemod": NewAngleModKeyboard(),
		"ortho":    NewOrthoKeyboard(),
		"colstag":  NewColStagKeyboard(),
	} {
		c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
		require.NoError(t, err, "keyboard %s should classify without overlap", name)
		require.NotNil(t, c)
	}
}

func TestClassifier_DuplicateLabelRejected(t *testing.T) {
	kb := NewANSIKeyboard()
	preds := []Predicate{sfrPredicate{}, DynamicPredicate{Fn: func(*Keyboard, int, int, int) bool { return false }, Label_: "Sfr"}}
	_, err := NewClassifier(kb, preds, DefaultFallbackLabel)
	require.Error(t, err)
	var overlap *TrigramOverlapError
	require.ErrorAs(t, err, &overlap)
}

func TestClassifier_OverlappingPredicatesRejected(t *testing.T) {
	kb := NewANSIKeyboard()
	alwaysTrue := DynamicPredicate{Fn: func(*Keyboard, int, int, int) bool { return true }, Label_: "A"}
	alsoTrue := DynamicPredicate{Fn: func(*Keyboard, int, int, int) bool { return true }, Label_: "B"}
	_, err := NewClassifier(kb, []Predicate{alwaysTrue, alsoTrue}, DefaultFallbackLabel)
	require.Error(t, err)
	var overlap *TrigramOverlapError
	require.ErrorAs(t, err, &overlap)
}

func TestClassifier_SfrOnRepeatedPosition(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	assert.Equal(t, "Sfr", c.Label(0, 0, 1))
	assert.Equal(t, "Sfr", c.Label(0, 1, 1))
}

func TestClassifier_SfbDistinctPositionsSameFinger(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	// Positions 0 (top row LP) and 20 (bottom row LP, same finger) typed
	// back-to-back, followed by a distinct-finger position: classic
	// same-finger-bigram shape.
	require.Equal(t, kb.Finger(0), kb.Finger(20))
	label := c.Label(0, 20, 5)
	assert.Equal(t, "Sfb", label)
}

func TestClassifier_AlternationAcrossHands(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	// position 0 = LP (left), position 5 = RI (right), position 1 = LR (left)
	require.Equal(t, LEFT, kb.Finger(0).Hand())
	require.Equal(t, RIGHT, kb.Finger(5).Hand())
	require.Equal(t, LEFT, kb.Finger(1).Hand())
	assert.Equal(t, "Alternation", c.Label(0, 5, 1))
}

func TestClassifier_OnehandInLeftHandIncreasingFingers(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	// Positions 0,1,2 on the top row are LP, LR, LM: strictly increasing
	// finger index, all left hand -> rolls inward toward the thumb.
	assert.Equal(t, "OnehandIn", c.Label(0, 1, 2))
	assert.Equal(t, "OnehandOut", c.Label(2, 1, 0))
}

func TestClassifier_RedirectChangesDirectionMidTrigram(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	// LP(0), LM(2), LR(1): finger index goes up then down, same hand.
	assert.Equal(t, "Redirect", c.Label(0, 2, 1))
}

func TestClassifier_LabelsIncludesFallbackLast(t *testing.T) {
	kb := NewANSIKeyboard()
	c, err := NewClassifier(kb, DefaultPredicates(), DefaultFallbackLabel)
	require.NoError(t, err)
	labels := c.Labels()
	require.NotEmpty(t, labels)
	assert.Equal(t, DefaultFallbackLabel, labels[len(labels)-1])
}
