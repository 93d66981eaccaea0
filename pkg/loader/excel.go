package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xuri/excelize/v2"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// Excel-specific errors
var (
	ErrEmptyExcel = errors.New("empty Excel file")
	ErrNoSheets   = errors.New("Excel file has no sheets")
)

// LoadExcel reads one sheet of an .xlsx workbook into a dataset. An empty
// sheet name selects the workbook's first sheet. The first row is the
// header. Cell values are re-inferred through the CSV path, so an Excel
// column of numbers gets the same typed series a CSV column would, and blank
// cells become missing.
func LoadExcel(path, sheet string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q has no data rows", ErrEmptyExcel, sheet)
	}

	header := rows[0]
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		// GetRows trims trailing blank cells per row; pad back to the header width.
		rec := make([]string, len(header))
		copy(rec, row)
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	df, err := imports.LoadFromCSV(context.Background(), bytes.NewReader(buf.Bytes()), imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		return nil, err
	}
	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyExcel
	}

	return dataset.FromFrame(df)
}
