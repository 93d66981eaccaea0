// Package export serializes cleaned datasets to CSV, JSON, and Excel.
// It is the output side of the engine's external contract: the engine hands
// over a dataset value and this package owns the wire formats.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/xuri/excelize/v2"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// Error definitions
var (
	ErrNilDataset = errors.New("nil dataset")
)

// WriteCSV serializes a dataset as CSV with a header row. Missing cells
// serialize as empty fields.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	empty := ""
	return exports.ExportToCSV(context.Background(), w, ds.Frame(), exports.CSVExportOptions{
		NullString: &empty,
	})
}

// WriteCSVFile serializes a dataset to a CSV file.
func WriteCSVFile(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON serializes a dataset as an array of objects, the mirror of the
// JSON load contract. Missing cells serialize as null.
func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	names := ds.ColumnNames()
	series := ds.Frame().Series

	records := make([]map[string]interface{}, ds.NRows())
	for i := range records {
		rec := make(map[string]interface{}, len(names))
		for ci, name := range names {
			v := series[ci].Value(i)
			if t, ok := v.(time.Time); ok {
				v = t.Format("2006-01-02")
			}
			rec[name] = v
		}
		records[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteJSONFile serializes a dataset to a JSON file.
func WriteJSONFile(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteExcel serializes a dataset to an .xlsx workbook with a single sheet.
// Missing cells become blank cells.
func WriteExcel(path string, ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	names := ds.ColumnNames()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	series := ds.Frame().Series
	for i := 0; i < ds.NRows(); i++ {
		row := make([]interface{}, len(series))
		for ci, s := range series {
			v := s.Value(i)
			if t, ok := v.(time.Time); ok {
				v = t.Format("2006-01-02")
			}
			row[ci] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
