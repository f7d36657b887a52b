package core

// FrequencyTable is a dense tensor F[c1,c2,c3] of trigram frequencies over
// a frozen CharacterMapping, normalized so that the sum of all entries is
// 100. Index layout: F[c1,c2,c3] = data[c1*m*m + c2*m + c3], m = mapping
// size.
type FrequencyTable struct {
	m    int
	data []float32
}

// NonZeroEntry is one non-zero cell of a FrequencyTable, used for export.
type NonZeroEntry struct {
	C1, C2, C3 int
	Freq       float32
}

// M returns the size of the character mapping the table was built over.
func (ft *FrequencyTable) M() int {
	return ft.m
}

func (ft *FrequencyTable) flatIndex(c1, c2, c3 int) int {
	return c1*ft.m*ft.m + c2*ft.m + c3
}

// Lookup returns F[c1,c2,c3] in O(1).
func (ft *FrequencyTable) Lookup(c1, c2, c3 int) float32 {
	return ft.data[ft.flatIndex(c1, c2, c3)]
}

// NonZero enumerates all non-zero entries of the table, for export.
func (ft *FrequencyTable) NonZero() []NonZeroEntry {
	var out []NonZeroEntry
	m := ft.m
	for c1 := 0; c1 < m; c1++ {
		for c2 := 0; c2 < m; c2++ {
			base := c1*m*m + c2*m
			for c3 := 0; c3 < m; c3++ {
				if f := ft.data[base+c3]; f != 0 {
					out = append(out, NonZeroEntry{c1, c2, c3, f})
				}
			}
		}
	}
	return out
}

// FrequencyTableBuilder accumulates (char-triple, weight) pairs in one
// pass, interning characters into the supplied CharacterMapping as it
// goes, then builds a normalized FrequencyTable. Duplicate triples
// accumulate additively; this is what makes cross-chunk merging during
// parallel corpus ingestion correct by simple summation, never averaging.
type FrequencyTableBuilder struct {
	mapping *CharacterMapping
	counts  map[[3]int]float64
}

// NewFrequencyTableBuilder creates a builder that interns characters into
// mapping.
func NewFrequencyTableBuilder(mapping *CharacterMapping) *FrequencyTableBuilder {
	return &FrequencyTableBuilder{
		mapping: mapping,
		counts:  make(map[[3]int]float64),
	}
}

// Add records weight additional occurrences of the rune triple (c1,c2,c3),
// interning any characters not already in the mapping.
func (b *FrequencyTableBuilder) Add(c1, c2, c3 rune, weight float64) {
	i1 := b.mapping.Push(c1)
	i2 := b.mapping.Push(c2)
	i3 := b.mapping.Push(c3)
	b.counts[[3]int{i1, i2, i3}] += weight
}

// Merge adds another builder's accumulated counts into this one. Used to
// combine per-chunk frequency tallies from parallel corpus ingestion
// before the single final normalization (summation, not averaging).
func (b *FrequencyTableBuilder) Merge(other *FrequencyTableBuilder) {
	for k, v := range other.counts {
		b.counts[k] += v
	}
}

// Build freezes the mapping and returns the normalized FrequencyTable. If
// the builder recorded no weight at all, the table is all zeros and is
// returned without error: an empty corpus is a valid (if useless) input.
func (b *FrequencyTableBuilder) Build() *FrequencyTable {
	b.mapping.Freeze()
	m := b.mapping.Len()

	ft := &FrequencyTable{m: m, data: make([]float32, m*m*m)}

	var total float64
	for _, v := range b.counts {
		total += v
	}

	scale := 1.0
	if total > 0 {
		scale = 100.0 / total
	}

	for k, v := range b.counts {
		ft.data[ft.flatIndex(k[0], k[1], k[2])] = float32(v * scale)
	}

	return ft
}
