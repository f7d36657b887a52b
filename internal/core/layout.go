package core

import "math/rand/v2"

// Layout assigns one interned character to each key position. keys[p] is
// the character index (from a CharacterMapping) placed at position p; it
// is the inverse of the usual "character -> position" view because swaps
// and trigram lookups are both naturally position-indexed operations.
type Layout struct {
	name string
	keys []int
}

// NewLayout constructs a Layout from an explicit position -> character-index
// assignment. len(keys) must equal kb.N(); callers that already have a
// Keyboard should check this themselves, as Layout does not retain one.
func NewLayout(name string, keys []int) *Layout {
	return &Layout{name: name, keys: append([]int(nil), keys...)}
}

// RandomLayout builds a Layout of n positions by shuffling chars (a slice
// of character indices, one per key, already including any filler/blank
// entries) with a Fisher-Yates shuffle driven by rng. If rng is nil, a
// fresh unseeded source is used, giving a different layout on every call.
func RandomLayout(name string, chars []int, rng *rand.Rand) *Layout {
	keys := append([]int(nil), chars...)
	shuffle(keys, rng)
	return &Layout{name: name, keys: keys}
}

func shuffle(s []int, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s[i], s[j] = s[j], s[i]
	}
}

// Name returns the layout's display name.
func (l *Layout) Name() string {
	return l.name
}

// SetName changes the layout's display name.
func (l *Layout) SetName(name string) {
	l.name = name
}

// N returns the number of key positions.
func (l *Layout) N() int {
	return len(l.keys)
}

// CharAt returns the character index assigned to position p.
func (l *Layout) CharAt(p int) int {
	return l.keys[p]
}

// Trigram returns the three character indices at positions p1, p2, p3, in
// that order, suitable for a FrequencyTable or WeightTable lookup.
func (l *Layout) Trigram(p1, p2, p3 int) (int, int, int) {
	return l.keys[p1], l.keys[p2], l.keys[p3]
}

// Swap exchanges the characters at positions i and j in place. A no-op if
// i == j.
func (l *Layout) Swap(i, j int) {
	l.keys[i], l.keys[j] = l.keys[j], l.keys[i]
}

// Clone returns an independent deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return &Layout{name: l.name, keys: append([]int(nil), l.keys...)}
}

// Keys returns a copy of the position -> character-index assignment.
func (l *Layout) Keys() []int {
	return append([]int(nil), l.keys...)
}
