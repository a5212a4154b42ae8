package dataset

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"powerrank/internal"
)

const exportSheet = "PowerRankings"

// ExportXLSX writes a dataset CSV to a single-sheet workbook.
func ExportXLSX(csvPath, outputPath string) (int, error) {
	rows, err := ReadRows(csvPath)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return 0, err
	}

	for i, h := range internal.CSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	rankCol := len(internal.CSVHeader)
	for i, row := range rows {
		r := i + 2
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if c+1 == rankCol {
				if n, err := strconv.Atoi(value); err == nil {
					_ = f.SetCellValue(exportSheet, cell, n)
					continue
				}
			}
			_ = f.SetCellValue(exportSheet, cell, value)
		}
	}
	_ = f.AutoFilter(exportSheet, "A1:G1", nil)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return 0, err
	}
	return len(rows), f.SaveAs(outputPath)
}
