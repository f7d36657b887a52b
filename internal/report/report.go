// Package report renders core.Layout scores and type breakdowns as tables,
// using go-pretty the way internal/tui renders keycraft analysis results.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/corvidae/trigopt/internal/core"
)

// RenderLayout writes a grid view of layout plus its type breakdown to w.
func RenderLayout(w io.Writer, layout *core.Layout, mapping *core.CharacterMapping, opt *core.Optimizer) {
	fmt.Fprintf(w, "%s\n\n", layout.Name())
	fmt.Fprint(w, core.Grid(layout, mapping, 10))
	fmt.Fprintln(w)

	breakdown := opt.CalcTypeBreakdown(layout)
	score := opt.CalcScore(layout)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Type", "Score", "% of Total"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for _, row := range core.SortedTypeBreakdown(breakdown) {
		tw.AppendRow(table.Row{row.Label, fmt.Sprintf("%.3f", row.Score), fmt.Sprintf("%.2f%%", row.Percent)})
	}
	tw.AppendFooter(table.Row{"Total", fmt.Sprintf("%.3f", score), "100.00%"})
	tw.Render()
}

// RankRow is one layout's entry in a comparison table.
type RankRow struct {
	Name  string
	Score float64
}

// RenderRank writes a table comparing rows, numbered from 1 in the order
// given; it does not sort them.
func RenderRank(w io.Writer, rows []RankRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Layout", "Score"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	for i, r := range rows {
		tw.AppendRow(table.Row{i + 1, r.Name, fmt.Sprintf("%.3f", r.Score)})
	}
	tw.Render()
}

// RenderScorerStats writes a small two-column table of corpus/scorer
// coverage statistics.
func RenderScorerStats(w io.Writer, corpusName string, trigramCount int, coveragePercent float64) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"Corpus", corpusName})
	tw.AppendRow(table.Row{"Distinct trigrams", trigramCount})
	tw.AppendRow(table.Row{"Coverage", fmt.Sprintf("%.2f%%", coveragePercent)})
	tw.Render()
}
