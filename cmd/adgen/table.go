package main

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// column describes one table column. Cells wider than wrap are soft-wrapped
// onto extra lines; zero keeps the cell on one line.
type column struct {
	title string
	align text.Align
	wrap  int
}

const (
	scriptTextWidth = 56
	videoNameWidth  = 28
)

func textColumn(title string) column {
	return column{title: title, align: text.AlignLeft, wrap: scriptTextWidth}
}
func numberColumn(title string) column { return column{title: title, align: text.AlignRight} }
func idColumn(title string) column     { return column{title: title, align: text.AlignLeft} }
func nameColumn(title string) column {
	return column{title: title, align: text.AlignLeft, wrap: videoNameWidth}
}

// renderTable lays rows out under cols. Short rows are padded with empty cells
// and extra cells are ignored.
func renderTable(cols []column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = hasWrapped(cols, rows)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		}
		if c.wrap > 0 {
			configs[i].WidthMax = c.wrap
			configs[i].WidthMaxEnforcer = text.WrapSoft
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range cols {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// hasWrapped reports whether any cell will span several lines, in which case
// row separators keep multi-line segments readable.
func hasWrapped(cols []column, rows [][]string) bool {
	for _, row := range rows {
		for i, c := range cols {
			if c.wrap > 0 && i < len(row) && text.RuneWidthWithoutEscSequences(row[i]) > c.wrap {
				return true
			}
		}
	}
	return false
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
