package core

import (
	"math/rand/v2"
	"sync"
)

// float32Epsilon is the smallest relative step between adjacent float32
// values near 1.0. Per-triple contributions are accumulated in float64 but
// originate from float32 frequency and weight inputs, so a swap's true
// improvement can never be resolved below roughly this scale times the
// number of affected triples.
const float32Epsilon = 1.1920929e-7

// ScoreCache holds the per-triple score contributions of a Layout against a
// fixed WeightTable and FrequencyTable, plus their running total. Holding
// the contribution of every position triple lets a candidate swap be
// evaluated, or committed, by touching only the triples an AffectedIndex
// says the swap can change.
type ScoreCache struct {
	wt     *WeightTable
	ft     *FrequencyTable
	layout *Layout
	n      int

	contrib []float64
	total   float64
}

// NewScoreCache computes a full O(n^3) rescore of layout against wt and ft.
func NewScoreCache(wt *WeightTable, ft *FrequencyTable, layout *Layout) *ScoreCache {
	n := wt.N()
	sc := &ScoreCache{
		wt:      wt,
		ft:      ft,
		layout:  layout,
		n:       n,
		contrib: make([]float64, n*n*n),
	}
	sc.rescoreAll()
	return sc
}

func (sc *ScoreCache) rescoreAll() {
	n := sc.n
	var total float64
	for p1 := 0; p1 < n; p1++ {
		for p2 := 0; p2 < n; p2++ {
			for p3 := 0; p3 < n; p3++ {
				c1, c2, c3 := sc.layout.Trigram(p1, p2, p3)
				v := sc.wt.Lookup(p1, p2, p3) * float64(sc.ft.Lookup(c1, c2, c3))
				sc.contrib[flatIndexW(n, p1, p2, p3)] = v
				total += v
			}
		}
	}
	sc.total = total
}

// Total returns the current total score.
func (sc *ScoreCache) Total() float64 {
	return sc.total
}

// Layout returns the layout this cache tracks. The caller must not swap
// positions on it directly; use ApplySwap so the cache stays consistent.
func (sc *ScoreCache) Layout() *Layout {
	return sc.layout
}

func (sc *ScoreCache) sumContrib(entries []AffectedTriple) float64 {
	var sum float64
	for _, e := range entries {
		sum += sc.contrib[flatIndexW(sc.n, e.P1, e.P2, e.P3)]
	}
	return sum
}

func (sc *ScoreCache) recompute(e AffectedTriple) float64 {
	c1, c2, c3 := sc.layout.Trigram(e.P1, e.P2, e.P3)
	return sc.wt.Lookup(e.P1, e.P2, e.P3) * float64(sc.ft.Lookup(c1, c2, c3))
}

// DeltaForSwap evaluates the change in total score a swap of positions i
// and j would cause, without committing it. entries should be
// affected.Of(i, j).
func (sc *ScoreCache) DeltaForSwap(entries []AffectedTriple, i, j int) float64 {
	if i == j {
		return 0
	}
	before := sc.sumContrib(entries)
	sc.layout.Swap(i, j)
	var after float64
	for _, e := range entries {
		after += sc.recompute(e)
	}
	sc.layout.Swap(i, j)
	return after - before
}

// ApplySwap commits a swap of positions i and j: the underlying layout is
// swapped, the affected contributions are recomputed in place, and the
// running total is adjusted by the resulting delta, which is returned.
func (sc *ScoreCache) ApplySwap(entries []AffectedTriple, i, j int) float64 {
	if i == j {
		return 0
	}
	before := sc.sumContrib(entries)
	sc.layout.Swap(i, j)
	var after float64
	for _, e := range entries {
		v := sc.recompute(e)
		sc.contrib[flatIndexW(sc.n, e.P1, e.P2, e.P3)] = v
		after += v
	}
	delta := after - before
	sc.total += delta
	return delta
}

// TypeBreakdown returns the total score contribution attributed to each
// trigram-type label known to c, keyed by label.
func (sc *ScoreCache) TypeBreakdown(c *Classifier) map[string]float64 {
	out := make(map[string]float64, len(c.Labels()))
	n := sc.n
	for p1 := 0; p1 < n; p1++ {
		for p2 := 0; p2 < n; p2++ {
			for p3 := 0; p3 < n; p3++ {
				label := c.Label(p1, p2, p3)
				out[label] += sc.contrib[flatIndexW(n, p1, p2, p3)]
			}
		}
	}
	return out
}

// Optimizer ties together a Keyboard's geometry, trigram classification,
// weights, and frequency data into a greedy hill-climbing layout search.
type Optimizer struct {
	kb       *Keyboard
	c        *Classifier
	wt       *WeightTable
	ft       *FrequencyTable
	affected *AffectedIndex
}

// NewOptimizer builds an Optimizer for a fixed keyboard, classifier,
// weight table, and frequency table. The affected-triple index is
// precomputed once here and shared read-only across every Generate call.
func NewOptimizer(kb *Keyboard, c *Classifier, wt *WeightTable, ft *FrequencyTable) *Optimizer {
	return &Optimizer{
		kb:       kb,
		c:        c,
		wt:       wt,
		ft:       ft,
		affected: BuildAffectedIndex(kb.N()),
	}
}

// Keyboard returns the optimizer's keyboard.
func (o *Optimizer) Keyboard() *Keyboard { return o.kb }

// Classifier returns the optimizer's trigram classifier.
func (o *Optimizer) Classifier() *Classifier { return o.c }

// CalcScore computes the full score of layout from scratch.
func (o *Optimizer) CalcScore(layout *Layout) float64 {
	return NewScoreCache(o.wt, o.ft, layout).Total()
}

// CalcTypeBreakdown computes the per-trigram-type score contribution of
// layout from scratch.
func (o *Optimizer) CalcTypeBreakdown(layout *Layout) map[string]float64 {
	return NewScoreCache(o.wt, o.ft, layout).TypeBreakdown(o.c)
}

// bestSwap is the result of scanning every candidate swap for one
// hill-climb round.
type bestSwap struct {
	i, j  int
	delta float64
}

// stepOnce scans every unordered pair of positions once, returning the
// single best improving swap found, or found=false if none clears the
// noise floor. Strict > comparison means the first pair encountered with
// the best delta wins any tie, giving deterministic output independent of
// map iteration order.
func (o *Optimizer) stepOnce(sc *ScoreCache, pinned []bool) (bestSwap, bool) {
	n := o.kb.N()
	var best bestSwap
	found := false

	for i := 0; i < n; i++ {
		if isPinned(pinned, i) {
			continue
		}
		for j := i + 1; j < n; j++ {
			if isPinned(pinned, j) {
				continue
			}
			entries := o.affected.Of(i, j)
			noiseFloor := float64(len(entries)) * float32Epsilon
			delta := sc.DeltaForSwap(entries, i, j)
			if delta > noiseFloor && (!found || delta > best.delta) {
				best = bestSwap{i: i, j: j, delta: delta}
				found = true
			}
		}
	}

	return best, found
}

func isPinned(pinned []bool, pos int) bool {
	return pinned != nil && pos < len(pinned) && pinned[pos]
}

// Generate runs greedy hill-climbing from start until no single swap
// improves the score beyond the noise floor, mutating start in place and
// returning the number of swaps applied and the final score. A nil pinned
// slice leaves every position free; otherwise pinned[p] true excludes
// position p from every candidate swap, letting a caller fix a subset of
// keys (home-row thumb keys, punctuation already placed by convention)
// without changing the swap/delta algorithm itself.
func (o *Optimizer) Generate(start *Layout, pinned []bool) (swaps int, score float64) {
	sc := NewScoreCache(o.wt, o.ft, start)
	for {
		best, found := o.stepOnce(sc, pinned)
		if !found {
			break
		}
		sc.ApplySwap(o.affected.Of(best.i, best.j), best.i, best.j)
		swaps++
	}
	return swaps, sc.Total()
}

// GenerateResult is one worker's outcome from a parallel random-restart
// search.
type GenerateResult struct {
	Layout *Layout
	Swaps  int
	Score  float64
}

// GenerateParallel runs numWorkers independent hill climbs, each starting
// from an independently shuffled random layout over chars, and returns the
// single best result. Each worker owns its own Layout and ScoreCache, so no
// synchronization is needed beyond collecting final results, matching the
// pool-of-independent-searches shape of a worker-based local search. A nil
// pinned slice leaves every position free in every worker.
func (o *Optimizer) GenerateParallel(numWorkers int, chars []int, seeds []uint64, pinned []bool) GenerateResult {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if len(seeds) < numWorkers {
		panic("core: GenerateParallel requires at least numWorkers seeds")
	}

	results := make([]GenerateResult, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		w := w
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seeds[w], seeds[w]))
			layout := RandomLayout("", chars, rng)
			swaps, score := o.Generate(layout, pinned)
			results[w] = GenerateResult{Layout: layout, Swaps: swaps, Score: score}
		}()
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best
}
