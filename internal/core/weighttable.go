package core

// Weights holds the tunable coefficients of the scoring model: a penalty or
// bonus per trigram-type label, and a per-finger agility coefficient summed
// across all three fingers a trigram uses. Missing entries default to 0, so
// a caller only needs to set the metrics they care about.
type Weights struct {
	Type   map[string]float64
	Finger map[Finger]float64
}

// NewWeights returns an empty Weights, every type and finger defaulting to
// zero contribution until set.
func NewWeights() *Weights {
	return &Weights{
		Type:   make(map[string]float64),
		Finger: make(map[Finger]float64),
	}
}

func (w *Weights) typeWeight(label string) float64 {
	return w.Type[label]
}

func (w *Weights) fingerWeight(f Finger) float64 {
	return w.Finger[f]
}

// WeightTable is the dense N^3 table W[p1,p2,p3] that the scorer takes its
// inner product against a FrequencyTable with. Each cell combines the
// trigram-type weight of the triple with the summed agility coefficient of
// all three fingers it uses.
type WeightTable struct {
	n    int
	data []float64
}

func flatIndexW(n, p1, p2, p3 int) int {
	return p1*n*n + p2*n + p3
}

// NewWeightTable builds the dense weight table for kb, classified by c,
// with coefficients from w.
//
// W[p1,p2,p3] = w.Type[c.Label(p1,p2,p3)]
//             + w.Finger[kb.Finger(p1)]
//             + w.Finger[kb.Finger(p2)]
//             + w.Finger[kb.Finger(p3)]
func NewWeightTable(kb *Keyboard, c *Classifier, w *Weights) *WeightTable {
	n := kb.N()
	wt := &WeightTable{n: n, data: make([]float64, n*n*n)}

	for p1 := 0; p1 < n; p1++ {
		agility1 := w.fingerWeight(kb.Finger(p1))
		for p2 := 0; p2 < n; p2++ {
			agility2 := w.fingerWeight(kb.Finger(p2))
			for p3 := 0; p3 < n; p3++ {
				agility3 := w.fingerWeight(kb.Finger(p3))
				typeW := w.typeWeight(c.Label(p1, p2, p3))
				wt.data[flatIndexW(n, p1, p2, p3)] = typeW + agility1 + agility2 + agility3
			}
		}
	}

	return wt
}

// N returns the number of key positions the table was built over.
func (wt *WeightTable) N() int {
	return wt.n
}

// Lookup returns W[p1,p2,p3] in O(1).
func (wt *WeightTable) Lookup(p1, p2, p3 int) float64 {
	return wt.data[flatIndexW(wt.n, p1, p2, p3)]
}
