package core

// Reserved constants from the wire format: index 0 and 1 of every
// CharacterMapping are always REPLACEMENT and SHIFT, in that order, so
// that external collaborators (the corpus refiner) can assume SHIFT is
// always encodable without a lookup.
const (
	REPLACEMENT rune = '�'
	SHIFT       rune = '⇑'
	REPEAT_KEY  rune = '@'

	// DEFAULT_KEY_SIZE is the nominal physical key pitch in millimetres.
	// Informational only; no component in this package consumes it.
	DEFAULT_KEY_SIZE = 19.05
)

// CharacterMapping is an ordered injection from characters to small
// integer indices, built by interning characters in first-occurrence
// order. Indices 0 and 1 are always REPLACEMENT and SHIFT. The mapping is
// mutable until Freeze is called (by FrequencyTable construction), after
// which a Push of a character not yet interned panics: a new index would
// silently invalidate any FrequencyTable already built against this
// mapping's indices. Pushing an already-interned character still returns
// its index.
type CharacterMapping struct {
	chars  []rune
	index  map[rune]int
	frozen bool
}

// NewCharacterMapping returns a mapping pre-seeded with the two reserved
// characters at indices 0 and 1.
func NewCharacterMapping() *CharacterMapping {
	cm := &CharacterMapping{
		chars: make([]rune, 0, 64),
		index: make(map[rune]int, 64),
	}
	cm.chars = append(cm.chars, REPLACEMENT, SHIFT)
	cm.index[REPLACEMENT] = 0
	cm.index[SHIFT] = 1
	return cm
}

// Push idempotently interns c, returning its index. If c is already
// present its existing index is returned unchanged.
func (cm *CharacterMapping) Push(c rune) int {
	if idx, ok := cm.index[c]; ok {
		return idx
	}
	if cm.frozen {
		panic("core: Push on a frozen CharacterMapping")
	}
	idx := len(cm.chars)
	cm.chars = append(cm.chars, c)
	cm.index[c] = idx
	return idx
}

// Encode returns the index of c, or 0 (REPLACEMENT) if c is unknown.
func (cm *CharacterMapping) Encode(c rune) int {
	if idx, ok := cm.index[c]; ok {
		return idx
	}
	return 0
}

// Decode returns the character at index u, or REPLACEMENT if u is out of
// range.
func (cm *CharacterMapping) Decode(u int) rune {
	if u < 0 || u >= len(cm.chars) {
		return REPLACEMENT
	}
	return cm.chars[u]
}

// Len returns the number of interned characters, including the two
// reserved entries.
func (cm *CharacterMapping) Len() int {
	return len(cm.chars)
}

// Freeze marks the mapping as immutable. Idempotent.
func (cm *CharacterMapping) Freeze() {
	cm.frozen = true
}

// Frozen reports whether Freeze has been called.
func (cm *CharacterMapping) Frozen() bool {
	return cm.frozen
}
