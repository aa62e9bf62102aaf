package table

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

// Placeholder is shown for absent or falsy values.
const Placeholder = "N/A"

// Cell is one rendered value.
type Cell struct {
	Text    string `json:"text"`
	Missing bool   `json:"missing,omitempty"`
}

// Row is one rendered record. MissingFields lists declared keys the record lacked.
type Row struct {
	Cells         []Cell   `json:"cells"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// View is the display model of one table.
type View struct {
	Kind         entity.Kind `json:"kind"`
	Title        string      `json:"title"`
	Headers      []string    `json:"headers"`
	Rows         []Row       `json:"rows"`
	EmptyMessage string      `json:"empty_message,omitempty"`
}

// Empty reports whether the view shows the no-data message instead of a table.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// EmptyMessage names the kind of data that is missing.
func EmptyMessage(title string) string {
	return fmt.Sprintf("No %s data available", strings.ToLower(title))
}

// Render builds the view of records for the variant. Each cell is looked up
// by its column key, then by its label; record key order is never used.
func (v Variant) Render(ctx context.Context, records []entity.Record) View {
	view := View{
		Kind:    v.Kind,
		Title:   v.Title,
		Headers: v.Labels(),
		Rows:    []Row{},
	}

	if len(records) == 0 {
		view.EmptyMessage = EmptyMessage(v.Title)
		return view
	}

	for i, rec := range records {
		row := Row{Cells: make([]Cell, len(v.Columns))}
		for j, col := range v.Columns {
			value, ok := lookup(rec, col)
			if !ok {
				row.MissingFields = append(row.MissingFields, col.Key)
				row.Cells[j] = Cell{Text: Placeholder, Missing: true}
				continue
			}
			row.Cells[j] = Cell{Text: formatValue(value)}
		}

		if len(row.MissingFields) > 0 {
			slog.WarnContext(ctx, "record is missing declared fields",
				"kind", v.Kind,
				"row", i,
				"missing", row.MissingFields,
			)
		}

		view.Rows = append(view.Rows, row)
	}

	return view
}

func lookup(rec entity.Record, col Column) (any, bool) {
	if value, ok := rec[col.Key]; ok {
		return value, true
	}
	value, ok := rec[col.Label]
	return value, ok
}
