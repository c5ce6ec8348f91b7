package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Export"

// ToXLSX serializes records into a single-sheet workbook using the same
// column specs as ToCSV and streams it to w. An empty collection returns
// ErrNothingToExport without writing anything.
func ToXLSX[T any](w io.Writer, records []T, columns []Column[T]) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, label := range headerRow(columns) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, label); err != nil {
			return err
		}
	}

	for rowIdx, rec := range records {
		for colIdx, colSpec := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, colSpec.Value(rec)); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
