package loader

import (
	"context"
	"errors"

	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// Parquet-specific errors
var (
	ErrEmptyParquet   = errors.New("empty Parquet file")
	ErrInvalidParquet = errors.New("invalid Parquet format")
)

// LoadParquet reads a Parquet file into a dataset.
// Uses the dataframe-go imports package with the parquet-go backend.
func LoadParquet(path string) (*dataset.Dataset, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	ctx := context.Background()

	df, err := imports.LoadFromParquet(ctx, fr)
	if err != nil {
		return nil, err
	}

	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyParquet
	}

	return dataset.FromFrame(df)
}
