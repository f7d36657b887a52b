package core

import (
	"sort"
	"strings"
)

// Grid renders layout as a multi-row string of its characters, one row per
// rowWidth positions, with an extra space inserted at the hand boundary
// (assumed to fall at the midpoint of each row) so left- and right-hand
// keys visually separate. Positions whose character decodes to
// REPLACEMENT print as a single space.
func Grid(layout *Layout, mapping *CharacterMapping, rowWidth int) string {
	var b strings.Builder
	n := layout.N()
	half := rowWidth / 2

	for p := 0; p < n; p++ {
		col := p % rowWidth
		if col == half {
			b.WriteByte(' ')
		}
		c := mapping.Decode(layout.CharAt(p))
		if c == REPLACEMENT {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c)
		}
		b.WriteByte(' ')
		if col == rowWidth-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// TypeBreakdownRow is one line of a type-breakdown report: a trigram-type
// label, its total score contribution, and its share of the overall total.
type TypeBreakdownRow struct {
	Label   string
	Score   float64
	Percent float64
}

// SortedTypeBreakdown converts a label->score map (as returned by
// ScoreCache.TypeBreakdown) into rows sorted by descending absolute score
// contribution, with each row's share of the total (which may be negative
// if the weighting scheme assigns negative coefficients to some types).
func SortedTypeBreakdown(breakdown map[string]float64) []TypeBreakdownRow {
	var total float64
	for _, v := range breakdown {
		total += v
	}

	rows := make([]TypeBreakdownRow, 0, len(breakdown))
	for label, score := range breakdown {
		var pct float64
		if total != 0 {
			pct = 100 * score / total
		}
		rows = append(rows, TypeBreakdownRow{Label: label, Score: score, Percent: pct})
	}

	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].Score, rows[j].Score
		if ai < 0 {
			ai = -ai
		}
		if aj < 0 {
			aj = -aj
		}
		if ai != aj {
			return ai > aj
		}
		return rows[i].Label < rows[j].Label
	})

	return rows
}
