package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyTableBuilder_NormalizesTo100(t *testing.T) {
	cm := NewCharacterMapping()
	b := NewFrequencyTableBuilder(cm)
	b.Add('t', 'h', 'e', 10)
	b.Add('a', 'n', 'd', 30)

	ft := b.Build()

	var total float64
	for _, e := range ft.NonZero() {
		total += float64(e.Freq)
	}
	assert.InDelta(t, 100.0, total, 1e-3)
}

func TestFrequencyTableBuilder_EmptyIsAllZero(t *testing.T) {
	cm := NewCharacterMapping()
	b := NewFrequencyTableBuilder(cm)
	ft := b.Build()
	assert.Empty(t, ft.NonZero())
}

func TestFrequencyTableBuilder_MergeIsAdditive(t *testing.T) {
	cm1 := NewCharacterMapping()
	b1 := NewFrequencyTableBuilder(cm1)
	b1.Add('t', 'h', 'e', 5)

	cm2 := NewCharacterMapping()
	b2 := NewFrequencyTableBuilder(cm2)
	b2.Add('t', 'h', 'e', 5)

	combined := NewFrequencyTableBuilder(cm1)
	combined.Add('t', 'h', 'e', 5)
	combined.Merge(&FrequencyTableBuilder{mapping: cm1, counts: b2.counts})

	ft := combined.Build()
	require.Len(t, ft.NonZero(), 1)
	assert.InDelta(t, 100.0, float64(ft.NonZero()[0].Freq), 1e-3)
}

func TestFrequencyTable_LookupMatchesCount(t *testing.T) {
	cm := NewCharacterMapping()
	b := NewFrequencyTableBuilder(cm)
	b.Add('t', 'h', 'e', 1)
	b.Add('a', 'n', 'd', 3)
	ft := b.Build()

	t1 := cm.Encode('t')
	h := cm.Encode('h')
	e := cm.Encode('e')
	a := cm.Encode('a')
	n := cm.Encode('n')
	d := cm.Encode('d')

	assert.InDelta(t, 25.0, float64(ft.Lookup(t1, h, e)), 1e-3)
	assert.InDelta(t, 75.0, float64(ft.Lookup(a, n, d)), 1e-3)
	assert.Zero(t, ft.Lookup(t1, t1, t1))
}
