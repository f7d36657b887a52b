package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/corvidae/trigopt/internal/core"
	"github.com/corvidae/trigopt/internal/report"
)

var generateCommand = &cli.Command{
	Name:    "generate",
	Aliases: []string{"g"},
	Usage:   "Generate a random layout and hill-climb it to a local optimum",
	Flags: append(flagsSlice("corpus", "weights-file", "weights", "geometry"),
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Random seed for reproducible output (0 = nondeterministic).",
			Value: 0,
		},
		&cli.UintFlag{
			Name:  "workers",
			Usage: "Number of independent random restarts to hill-climb in parallel.",
			Value: 8,
		},
		&cli.StringFlag{
			Name:  "save",
			Usage: "Layout filename to save the result under (relative to data/layouts).",
		},
		&cli.StringFlag{
			Name:  "layout",
			Usage: "Starting layout file to refine instead of a random restart pool (relative to data/layouts).",
		},
		&cli.StringFlag{
			Name:  "free",
			Usage: "Characters free to be moved when refining --layout; all others are pinned, eg: zqjx.",
		},
	),
	Action: generateAction,
}

func generateAction(ctx context.Context, c *cli.Command) error {
	layoutFile := c.String("layout")
	var bc *buildContext
	var err error
	if layoutFile != "" {
		bc, err = buildOptimizer(ctx, c.String("geometry"), c.String("corpus"), c.String("weights-file"), c.String("weights"), layoutFile)
	} else {
		bc, err = buildOptimizer(ctx, c.String("geometry"), c.String("corpus"), c.String("weights-file"), c.String("weights"))
	}
	if err != nil {
		return err
	}
	opt, mapping := bc.Optimizer, bc.Mapping

	var result core.GenerateResult
	var workers int
	if layoutFile != "" {
		start := bc.Layouts[0]
		pinned := pinnedFromFree(start, mapping, c.String("free"))
		swaps, score := opt.Generate(start, pinned)
		result = core.GenerateResult{Layout: start, Swaps: swaps, Score: score}
		workers = 1
	} else {
		chars := defaultChars(mapping, opt.Keyboard().N())
		workers = int(c.Uint("workers"))
		seed := c.Uint64("seed")
		if seed == 0 {
			seed = rand.Uint64()
		}
		seeds := make([]uint64, workers)
		for i := range seeds {
			seeds[i] = seed + uint64(i)*0x9E3779B97F4A7C15
		}
		result = opt.GenerateParallel(workers, chars, seeds, nil)
	}
	result.Layout.SetName("generated")

	report.RenderLayout(c.Root().Writer, result.Layout, mapping, opt)
	fmt.Fprintf(c.Root().Writer, "\n%d swaps applied across %d workers\n", result.Swaps, workers)

	placed := make(map[rune]bool, result.Layout.N())
	for p := 0; p < result.Layout.N(); p++ {
		placed[mapping.Decode(result.Layout.CharAt(p))] = true
	}
	fmt.Fprintln(c.Root().Writer)
	report.RenderScorerStats(c.Root().Writer, bc.Corpus.Name, len(bc.Corpus.Trigrams), bc.Corpus.Coverage(placed))

	if save := c.String("save"); save != "" {
		path := filepath.Join(layoutDir, save)
		if err := core.SaveLayoutFile(path, c.String("geometry"), result.Layout, mapping); err != nil {
			return fmt.Errorf("saving layout to %q: %w", path, err)
		}
		fmt.Fprintf(c.Root().Writer, "saved to %s\n", path)
	}

	return nil
}
