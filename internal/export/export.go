// Package export writes list results to XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column describes one spreadsheet column.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Write renders rows as a single-sheet workbook with a bold, frozen,
// filterable header row.
func Write[T any](w io.Writer, sheet string, cols []Column[T], rows []T) error {
	f, err := build(sheet, cols, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile is Write to a file at path.
func WriteFile[T any](path, sheet string, cols []Column[T], rows []T) error {
	f, err := build(sheet, cols, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func build[T any](sheet string, cols []Column[T], rows []T) (*excelize.File, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("exporting %s: no columns", sheet)
	}
	f := excelize.NewFile()
	if err := fill(f, sheet, cols, rows); err != nil {
		f.Close()
		return nil, fmt.Errorf("exporting %s: %w", sheet, err)
	}
	return f, nil
}

func fill[T any](f *excelize.File, sheet string, cols []Column[T], rows []T) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]any, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		widths[i] = len(c.Header)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range rows {
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = c.Value(row)
			if n := len(fmt.Sprint(values[i])); n > widths[i] {
				widths[i] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(w, 60)+2)); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+last+"1", nil); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// joined renders a list cell.
func joined(items []string) string {
	return strings.Join(items, ", ")
}

// yesNo renders a flag cell.
func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
