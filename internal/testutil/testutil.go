// Package testutil provides shared fixtures for engine and loader tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// TempCSV creates a temporary CSV file and returns its path.
// The file is automatically cleaned up when the test finishes.
func TempCSV(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

// TempFile creates a temporary file with the given content and extension.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// MessyCSV returns CSV content with duplicates, gaps, sloppy text, mixed
// date formats, and an outlier — one of everything the engine cleans.
func MessyCSV() string {
	return `name,age,joined,salary
  Alice ,30,2024-01-05,50000
Bob,,01/06/2024,52000
  Alice ,30,2024-01-05,50000
Carol,41,not-a-date,
Dave,38,2024-02-10,900000`
}

// SimpleCSV returns minimal test CSV content.
func SimpleCSV() string {
	return `a,b
1,2
3,4
5,6`
}

// MakeDataset wraps a frame in a dataset, failing the test on bad shape.
func MakeDataset(t *testing.T, df *dataframe.DataFrame) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromFrame(df)
	if err != nil {
		t.Fatalf("FromFrame failed: %v", err)
	}
	return ds
}

// MakePeopleDataset builds a small mixed-type dataset: text, numeric, and a
// date-like text column.
func MakePeopleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return MakeDataset(t, dataframe.NewDataFrame(
		dataframe.NewSeriesString("name", nil, "alice", "bob", "carol", "dave"),
		dataframe.NewSeriesInt64("age", nil, 30, 25, 41, 38),
		dataframe.NewSeriesString("joined", nil, "2024-01-05", "01/06/2024", "2024-02-01", "2024-02-10"),
	))
}

// MakeGappyDataset builds a numeric dataset with missing cells.
func MakeGappyDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return MakeDataset(t, dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("x", nil, 10.0, nil, 30.0),
		dataframe.NewSeriesString("tag", nil, "a", nil, "b"),
	))
}

// AssertRows checks a dataset's row count.
func AssertRows(t *testing.T, ds *dataset.Dataset, want int) {
	t.Helper()
	if got := ds.NRows(); got != want {
		t.Errorf("expected %d rows, got %d", want, got)
	}
}

// AssertCell checks a single cell against an expected value. Pass nil to
// expect the missing marker.
func AssertCell(t *testing.T, ds *dataset.Dataset, col string, row int, want interface{}) {
	t.Helper()
	s, ok := ds.Column(col)
	if !ok {
		t.Fatalf("no column %q", col)
	}
	got := s.Value(row)
	if want == nil {
		if got != nil {
			t.Errorf("%s[%d]: expected missing, got %v", col, row, got)
		}
		return
	}
	if got != want {
		t.Errorf("%s[%d]: expected %v (%T), got %v (%T)", col, row, want, want, got, got)
	}
}

// AssertFloat64Near checks if two float64 values are approximately equal.
func AssertFloat64Near(t *testing.T, expected, actual, tolerance float64) {
	t.Helper()
	if actual < expected-tolerance || actual > expected+tolerance {
		t.Errorf("expected %.6f, got %.6f (tolerance: %.6f)", expected, actual, tolerance)
	}
}
