package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corvidae/trigopt/internal/config"
	"github.com/corvidae/trigopt/internal/core"
	"github.com/corvidae/trigopt/internal/corpus"
)

// buildContext bundles everything a subcommand needs to score and generate
// layouts: the optimizer, the shared character mapping it was built over,
// any layout files the caller asked to have preloaded, and the corpus
// itself (kept around for coverage reporting).
type buildContext struct {
	Optimizer *core.Optimizer
	Mapping   *core.CharacterMapping
	Layouts   []*core.Layout
	Corpus    *corpus.Corpus
}

// buildOptimizer loads the named corpus, weights configuration, and any
// requested layout files into one shared CharacterMapping, then builds the
// Optimizer. Layout files are interned before the mapping is frozen (which
// happens when the frequency table is built), so a layout may reference
// characters the corpus never saw; those positions simply contribute zero
// frequency to every trigram that touches them.
func buildOptimizer(ctx context.Context, geometryName, corpusFile, weightsFile, weightsOverride string, layoutFiles ...string) (*buildContext, error) {
	kb, err := core.NewKeyboardByGeometry(geometryName)
	if err != nil {
		return nil, err
	}

	classifier, err := core.NewClassifier(kb, core.DefaultPredicates(), core.DefaultFallbackLabel)
	if err != nil {
		return nil, fmt.Errorf("building trigram classifier: %w", err)
	}

	var weightsPath string
	if weightsFile != "" {
		weightsPath = filepath.Join(weightsDir, weightsFile)
	}
	weights, err := config.LoadWeights(weightsPath, weightsOverride)
	if err != nil {
		return nil, err
	}
	wt := core.NewWeightTable(kb, classifier, weights)

	mapping := core.NewCharacterMapping()

	layouts := make([]*core.Layout, 0, len(layoutFiles))
	for _, lf := range layoutFiles {
		layout, err := loadLayoutFile(lf, mapping)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}

	corpusName := strings.TrimSuffix(corpusFile, filepath.Ext(corpusFile))
	corpusPath := filepath.Join(corpusDir, corpusFile)
	c, err := corpus.LoadPath(ctx, corpusName, corpusPath)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %q: %w", corpusFile, err)
	}

	builder := core.NewFrequencyTableBuilder(mapping)
	c.ToFrequencyTableBuilder(builder)
	ft := builder.Build()

	return &buildContext{
		Optimizer: core.NewOptimizer(kb, classifier, wt, ft),
		Mapping:   mapping,
		Layouts:   layouts,
		Corpus:    c,
	}, nil
}

// pinnedFromFree returns a pinned-position slice for layout: every position
// whose character is not one of the runes in free is pinned. An empty free
// string leaves every position free (pinned is then nil).
func pinnedFromFree(layout *core.Layout, mapping *core.CharacterMapping, free string) []bool {
	if free == "" {
		return nil
	}
	keep := make(map[rune]bool, len(free))
	for _, r := range free {
		keep[r] = true
	}
	pinned := make([]bool, layout.N())
	for p := 0; p < layout.N(); p++ {
		pinned[p] = !keep[mapping.Decode(layout.CharAt(p))]
	}
	return pinned
}

// defaultChars returns the set of character indices to place on a
// generated layout: every non-reserved character the mapping knows about,
// padded or truncated to fit n key positions. Positions beyond the known
// alphabet are filled with REPLACEMENT (index 0), leaving those keys
// blank.
func defaultChars(mapping *core.CharacterMapping, n int) []int {
	chars := make([]int, n)
	for i := range chars {
		if i+2 < mapping.Len() {
			chars[i] = i + 2
		} else {
			chars[i] = 0
		}
	}
	return chars
}

// loadLayoutFile loads a layout text file from layoutDir, interning its
// characters into mapping.
func loadLayoutFile(filename string, mapping *core.CharacterMapping) (*core.Layout, error) {
	if filename == "" {
		return nil, fmt.Errorf("layout file is required")
	}
	path := filepath.Join(layoutDir, filename)
	_, layout, err := core.LoadLayoutFile(path, mapping)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	layout.SetName(name)
	return layout, nil
}
