package table

import (
	"context"
	"io"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteWorkbook exports the three collections as an xlsx workbook with one
// sheet per variant. Every sheet carries its header row, even when empty.
func WriteWorkbook(ctx context.Context, w io.Writer, result entity.ExtractionResult) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, variant := range Variants() {
		view := variant.Render(ctx, result.Collection(variant.Kind))
		if i == 0 {
			err = f.SetSheetName(defaultSheet, view.Title)
		} else {
			_, err = f.NewSheet(view.Title)
		}
		if err != nil {
			return err
		}
		if err := writeSheet(f, view, headerStyle); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, view View, headerStyle int) error {
	sheet := view.Title

	header := make([]any, len(view.Headers))
	for i, h := range view.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range view.Rows {
		cells := make([]any, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Text
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return err
		}
	}

	return nil
}
