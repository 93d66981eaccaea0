package loader

import (
	"bytes"
	"context"
	"errors"
	"os"

	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// JSON-specific errors
var (
	ErrEmptyJSON   = errors.New("empty JSON file")
	ErrInvalidJSON = errors.New("invalid JSON format")
)

// LoadJSON reads a JSON file containing an array of objects into a dataset.
// The JSON must be in the format: [{"col1": val1, "col2": val2}, ...]
// Column types are inferred automatically; null and absent fields become
// missing.
func LoadJSON(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrEmptyJSON
	}

	reader := bytes.NewReader(data)
	ctx := context.Background()

	df, err := imports.LoadFromJSON(ctx, reader)
	if err != nil {
		return nil, err
	}

	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyJSON
	}

	return dataset.FromFrame(df)
}
