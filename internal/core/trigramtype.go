package core

import "fmt"

// Predicate is one member of a closed, ordered set of trigram-type tests.
// The canonical variants below (sfrPredicate, sfbPredicate, ...) are a
// tagged union expressed as distinct Go types rather than borrowed trait
// objects; DynamicPredicate is the escape hatch for caller-supplied tests,
// owning its closure rather than borrowing one.
type Predicate interface {
	// Holds reports whether the predicate fires for the position triple
	// (p1, p2, p3) on kb.
	Holds(kb *Keyboard, p1, p2, p3 int) bool
	// Label is this predicate's display name, used as the key into a
	// Weights-config and required to be globally unique.
	Label() string
}

// DynamicPredicate wraps a caller-supplied predicate function, the escape
// hatch for trigram types outside the canonical set.
type DynamicPredicate struct {
	Fn    func(kb *Keyboard, p1, p2, p3 int) bool
	Label_ string
}

func (d DynamicPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool { return d.Fn(kb, p1, p2, p3) }
func (d DynamicPredicate) Label() string                          { return d.Label_ }

// sfrPredicate only catches a repeat between adjacent positions (p1==p2 or
// p2==p3); a repeat between p1 and p3 alone (ABA) falls through to whatever
// the hand/finger pattern of the outer two positions classifies it as.
type sfrPredicate struct{}

func (sfrPredicate) Holds(_ *Keyboard, p1, p2, p3 int) bool { return p1 == p2 || p2 == p3 }
func (sfrPredicate) Label() string                          { return "Sfr" }

type sfbPredicate struct{}

func (sfbPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	if p1 == p2 || p2 == p3 {
		return false
	}
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	return (f1 == f2 || f2 == f3) && f1 != f3
}
func (sfbPredicate) Label() string { return "Sfb" }

type sftPredicate struct{}

func (sftPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	if p1 == p2 || p2 == p3 {
		return false
	}
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	return f1 == f2 && f2 == f3
}
func (sftPredicate) Label() string { return "Sft" }

// handPattern classifies the 3-position hand sequence into one of the
// three mutually exclusive, exhaustive shapes a trigram's hands can take.
type handPattern int

const (
	handAllSame handPattern = iota
	handAlternating
	handOneCross
)

func classifyHands(h1, h2, h3 uint8) (handPattern, int) {
	switch {
	case h1 == h2 && h2 == h3:
		return handAllSame, 0
	case h1 != h2 && h2 != h3:
		return handAlternating, 0
	case h1 == h2:
		// crossing between (p2,p3); same-hand pair is (p1,p2)
		return handOneCross, 1
	default:
		// h2 == h3; crossing between (p1,p2); same-hand pair is (p2,p3)
		return handOneCross, 2
	}
}

type inrollPredicate struct{}

func (inrollPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	h1, h2, h3 := f1.Hand(), f2.Hand(), f3.Hand()
	pattern, which := classifyHands(h1, h2, h3)
	if pattern != handOneCross {
		return false
	}
	fA, fB, hand := sameHandPair(which, f1, f2, f3, h1, h2, h3)
	if fA == fB {
		return false
	}
	return (fA < fB) == (hand == LEFT)
}
func (inrollPredicate) Label() string { return "Inroll" }

type outrollPredicate struct{}

func (outrollPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	h1, h2, h3 := f1.Hand(), f2.Hand(), f3.Hand()
	pattern, which := classifyHands(h1, h2, h3)
	if pattern != handOneCross {
		return false
	}
	fA, fB, hand := sameHandPair(which, f1, f2, f3, h1, h2, h3)
	if fA == fB {
		return false
	}
	return (fA < fB) != (hand == LEFT)
}
func (outrollPredicate) Label() string { return "Outroll" }

// sameHandPair returns the two same-hand fingers of a one-crossing
// trigram, in temporal order, and the hand they share. which is 1 when
// the crossing is between p2 and p3 (same-hand pair is p1,p2), or 2 when
// the crossing is between p1 and p2 (same-hand pair is p2,p3).
func sameHandPair(which int, f1, f2, f3 Finger, h1, h2, h3 uint8) (Finger, Finger, uint8) {
	if which == 1 {
		return f1, f2, h1
	}
	return f2, f3, h2
}

type alternationPredicate struct{}

func (alternationPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	h1 := kb.Finger(p1).Hand()
	h2 := kb.Finger(p2).Hand()
	h3 := kb.Finger(p3).Hand()
	pattern, _ := classifyHands(h1, h2, h3)
	return pattern == handAlternating
}
func (alternationPredicate) Label() string { return "Alternation" }

type onehandInPredicate struct{}

func (onehandInPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	h1, h2, h3 := f1.Hand(), f2.Hand(), f3.Hand()
	if p, _ := classifyHands(h1, h2, h3); p != handAllSame {
		return false
	}
	inc := f1 < f2 && f2 < f3
	dec := f1 > f2 && f2 > f3
	return (inc && h1 == LEFT) || (dec && h1 == RIGHT)
}
func (onehandInPredicate) Label() string { return "OnehandIn" }

type onehandOutPredicate struct{}

func (onehandOutPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	h1, h2, h3 := f1.Hand(), f2.Hand(), f3.Hand()
	if p, _ := classifyHands(h1, h2, h3); p != handAllSame {
		return false
	}
	inc := f1 < f2 && f2 < f3
	dec := f1 > f2 && f2 > f3
	return (dec && h1 == LEFT) || (inc && h1 == RIGHT)
}
func (onehandOutPredicate) Label() string { return "OnehandOut" }

type redirectPredicate struct{}

func (redirectPredicate) Holds(kb *Keyboard, p1, p2, p3 int) bool {
	f1, f2, f3 := kb.Finger(p1), kb.Finger(p2), kb.Finger(p3)
	h1, h2, h3 := f1.Hand(), f2.Hand(), f3.Hand()
	if p, _ := classifyHands(h1, h2, h3); p != handAllSame {
		return false
	}
	return (f1 < f2 && f2 > f3) || (f1 > f2 && f2 < f3)
}
func (redirectPredicate) Label() string { return "Redirect" }

// DefaultPredicates returns the canonical predicate list in the order
// required for mutual exclusivity: Sfr must precede Sfb/Sft so that
// same-finger-repeat triples are never also classified as a same-finger
// bigram or trigram.
func DefaultPredicates() []Predicate {
	return []Predicate{
		sfrPredicate{},
		sfbPredicate{},
		sftPredicate{},
		inrollPredicate{},
		outrollPredicate{},
		alternationPredicate{},
		onehandInPredicate{},
		onehandOutPredicate{},
		redirectPredicate{},
	}
}

// DefaultFallbackLabel is the label assigned to triples matched by no
// predicate in the canonical set; it must be unique among labels.
const DefaultFallbackLabel = "Unspecified"

// Classifier assigns every ordered position triple of a Keyboard a single
// trigram-type label, using the first predicate (in order) that fires, or
// the fallback label if none does.
type Classifier struct {
	kb       *Keyboard
	n        int
	labels   []string // distinct labels in assignment order, fallback last
	types    []int16  // flat index -> index into labels
	fallback int16
}

func flatIndex3(n, p1, p2, p3 int) int {
	return p1*n*n + p2*n + p3
}

// NewClassifier builds a Classifier for kb using predicates, tried in
// order, with fallback assigned to any triple none of them match.
//
// Pre-flight: every one of the N^3 triples is checked against every
// predicate; if more than one predicate fires on a triple, or if any two
// predicates (or a predicate and the fallback) share a label, construction
// fails with a TrigramOverlapError and no Classifier is returned.
func NewClassifier(kb *Keyboard, predicates []Predicate, fallback string) (*Classifier, error) {
	labelSet := make(map[string]bool, len(predicates)+1)
	labelSet[fallback] = true
	for _, p := range predicates {
		if labelSet[p.Label()] {
			return nil, &TrigramOverlapError{Labels: []string{p.Label(), p.Label()}}
		}
		labelSet[p.Label()] = true
	}

	n := kb.N()
	labels := make([]string, 0, len(predicates)+1)
	labelIndex := make(map[string]int16, len(predicates)+1)
	for _, p := range predicates {
		labelIndex[p.Label()] = int16(len(labels))
		labels = append(labels, p.Label())
	}
	fallbackIdx := int16(len(labels))
	labels = append(labels, fallback)

	types := make([]int16, n*n*n)

	for p1 := 0; p1 < n; p1++ {
		for p2 := 0; p2 < n; p2++ {
			for p3 := 0; p3 < n; p3++ {
				matched := -1
				var fired []string
				for i, pred := range predicates {
					if pred.Holds(kb, p1, p2, p3) {
						fired = append(fired, pred.Label())
						if matched == -1 {
							matched = i
						}
					}
				}
				if len(fired) > 1 {
					return nil, &TrigramOverlapError{P1: p1, P2: p2, P3: p3, Labels: fired}
				}
				idx := flatIndex3(n, p1, p2, p3)
				if matched == -1 {
					types[idx] = fallbackIdx
				} else {
					types[idx] = labelIndex[predicates[matched].Label()]
				}
			}
		}
	}

	return &Classifier{kb: kb, n: n, labels: labels, types: types, fallback: fallbackIdx}, nil
}

// Type returns the label index (stable, usable as a map/array key) for the
// triple (p1,p2,p3).
func (c *Classifier) Type(p1, p2, p3 int) int16 {
	return c.types[flatIndex3(c.n, p1, p2, p3)]
}

// Label returns the human-readable label for the triple (p1,p2,p3).
func (c *Classifier) Label(p1, p2, p3 int) string {
	return c.labels[c.Type(p1, p2, p3)]
}

// LabelForType returns the display label for a label index previously
// returned by Type.
func (c *Classifier) LabelForType(t int16) string {
	return c.labels[t]
}

// Labels returns all distinct labels known to the classifier, in
// assignment order (fallback last).
func (c *Classifier) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Keyboard returns the keyboard this classifier was built against.
func (c *Classifier) Keyboard() *Keyboard {
	return c.kb
}

func (c *Classifier) String() string {
	return fmt.Sprintf("Classifier{n=%d, labels=%v}", c.n, c.labels)
}
