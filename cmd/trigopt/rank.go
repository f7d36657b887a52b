package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/corvidae/trigopt/internal/report"
)

var rankCommand = &cli.Command{
	Name:    "rank",
	Aliases: []string{"rk"},
	Usage:   "Compare layout files by score against a corpus and weights",
	Flags:   flagsSlice("corpus", "weights-file", "weights", "geometry"),
	Action:  rankAction,
}

func rankAction(ctx context.Context, c *cli.Command) error {
	layoutFiles := c.Args().Slice()
	if len(layoutFiles) == 0 {
		return fmt.Errorf("rank requires at least one layout file argument")
	}

	bc, err := buildOptimizer(ctx, c.String("geometry"), c.String("corpus"), c.String("weights-file"), c.String("weights"), layoutFiles...)
	if err != nil {
		return err
	}

	rows := make([]report.RankRow, len(bc.Layouts))
	for i, layout := range bc.Layouts {
		rows[i] = report.RankRow{Name: layout.Name(), Score: bc.Optimizer.CalcScore(layout)}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })

	report.RenderRank(c.Root().Writer, rows)
	return nil
}
