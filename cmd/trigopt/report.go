package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/corvidae/trigopt/internal/report"
)

var reportCommand = &cli.Command{
	Name:    "report",
	Aliases: []string{"r"},
	Usage:   "Show a layout's grid and trigram-type score breakdown",
	Flags: append(flagsSlice("corpus", "weights-file", "weights", "geometry"),
		&cli.StringFlag{
			Name:     "layout",
			Aliases:  []string{"l"},
			Usage:    "Layout file to report on (relative to data/layouts).",
			Required: true,
		},
	),
	Action: reportAction,
}

func reportAction(ctx context.Context, c *cli.Command) error {
	bc, err := buildOptimizer(ctx, c.String("geometry"), c.String("corpus"), c.String("weights-file"), c.String("weights"), c.String("layout"))
	if err != nil {
		return err
	}

	layout := bc.Layouts[0]
	report.RenderLayout(c.Root().Writer, layout, bc.Mapping, bc.Optimizer)

	placed := make(map[rune]bool, layout.N())
	for p := 0; p < layout.N(); p++ {
		placed[bc.Mapping.Decode(layout.CharAt(p))] = true
	}
	fmt.Fprintln(c.Root().Writer)
	report.RenderScorerStats(c.Root().Writer, bc.Corpus.Name, len(bc.Corpus.Trigrams), bc.Corpus.Coverage(placed))
	return nil
}
