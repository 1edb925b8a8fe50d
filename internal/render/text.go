package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"booksearch/internal/search"
)

// WriteResults prints the result set as a borderless table, one row per card
// in input order, or the notice line when there are no cards.
func WriteResults(w io.Writer, set search.ResultSet) error {
	if set.Notice != "" {
		_, err := color.New(color.FgYellow).Fprintln(w, set.Notice)
		return err
	}
	if len(set.Cards) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(set.Cards))
	for i, c := range set.Cards {
		cover := c.Cover
		if cover == "" {
			cover = c.NoCover
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			color.New(color.Bold).Sprint(c.Title),
			c.Author,
			cover,
		})
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
		}),
	)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	return table.Render()
}

// WriteError prints the error notice.
func WriteError(w io.Writer, text string) error {
	_, err := color.New(color.FgRed, color.Bold).Fprintln(w, text)
	return err
}
