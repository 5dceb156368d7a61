package study

import (
	"bufio"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shivanshkc/repstat/pkg/utils/miscutils"
)

const (
	// rowHeaderWidth is the width of the left-aligned row label field.
	rowHeaderWidth = 7
	// minColWidth is the narrowest a column may be.
	minColWidth = 5
	// missingCell is printed for values absent from the table.
	missingCell = "-"
)

// FormatPct converts a percentile label into its column or row header:
// "00" becomes "min", "100" becomes "max", reserved columns pass through and
// any other numeric label gets a "p" prefix. Non-numeric labels pass through.
func FormatPct(pct string) string {
	switch pct {
	case ColCum, ColMean, ColStdev:
		return pct
	}

	v, err := ParsePct(pct)
	switch {
	case err != nil:
		return pct
	case v == 0:
		return "min"
	case v == 100:
		return "max"
	default:
		return "p" + pct
	}
}

// FormatTable writes table as fixed-width aligned text.
//
// Columns are timePcts (TimeFormatPcts when nil) followed by ColCum, ColMean and
// ColStdev. Each column is max(5, len(label)+1) wide and right-aligned. Rows
// follow the order of rows, each headed by its label left-aligned in a 7
// character field. Values go through format, or miscutils.FormatDuration when
// format is nil, and absent values print as "-".
func FormatTable(w io.Writer, table Table, rows, timePcts []string, format func(float64) string) error {
	if timePcts == nil {
		timePcts = TimeFormatPcts
	}
	if format == nil {
		format = miscutils.FormatDuration
	}

	cols := make([]string, 0, len(timePcts)+3)
	cols = append(cols, timePcts...)
	cols = append(cols, ColCum, ColMean, ColStdev)

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = max(minColWidth, len(col)+1)
	}

	out := bufio.NewWriter(w)

	_, _ = out.WriteString(text.AlignLeft.Apply("", rowHeaderWidth))
	for i, col := range cols {
		_, _ = out.WriteString(" " + text.AlignRight.Apply(FormatPct(col), widths[i]))
	}

	for _, row := range rows {
		_, _ = out.WriteString("\n" + text.AlignLeft.Apply(FormatPct(row), rowHeaderWidth))
		for i, col := range cols {
			cell := missingCell
			if v, ok := table[row][col]; ok {
				cell = format(v)
			}
			_, _ = out.WriteString(" " + text.AlignRight.Apply(cell, widths[i]))
		}
	}
	_, _ = out.WriteString("\n")

	return out.Flush()
}
