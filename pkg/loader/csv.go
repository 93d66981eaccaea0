// Package loader materializes datasets from CSV, JSON, Parquet, and Excel
// files. Column types are inferred; empty cells become the missing marker.
// The cleaning engine never touches files itself — this package is the
// ingestion side of its input contract.
package loader

import (
	"context"
	"errors"
	"os"

	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// Error definitions
var (
	ErrEmptyFile     = errors.New("empty CSV file")
	ErrNoHeader      = errors.New("CSV file has no header")
	ErrInvalidFormat = errors.New("invalid CSV format")
)

// LoadCSV reads a CSV file into a dataset.
// - First row is header (column names)
// - Auto-detects column types (int64, float64, string)
// - Empty values become missing
// Row identifiers are assigned sequentially from zero.
func LoadCSV(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ctx := context.Background()
	df, err := imports.LoadFromCSV(ctx, file, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		return nil, err
	}

	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyFile
	}

	return dataset.FromFrame(df)
}
