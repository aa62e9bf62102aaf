package table

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteText prints the view as a plain text table for terminals.
func WriteText(w io.Writer, view View) error {
	if view.Empty() {
		_, err := fmt.Fprintln(w, view.EmptyMessage)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (%d)\n", view.Title, len(view.Rows)); err != nil {
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(view.Headers)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	for _, row := range view.Rows {
		line := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			line[i] = cell.Text
		}
		tw.Append(line)
	}
	tw.Render()

	return nil
}
