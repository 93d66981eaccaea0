package loader

import (
	"testing"

	"github.com/akhildatla/scrub/internal/testutil"
	"github.com/akhildatla/scrub/pkg/dataset"
)

func TestLoadJSON_Simple(t *testing.T) {
	jsonFile := testutil.TempFile(t, `[
		{"name": "Alice", "age": 30, "score": 95.5},
		{"name": "Bob", "age": 25, "score": 87.0},
		{"name": "Charlie", "age": 35, "score": 92.5}
	]`, ".json")

	ds, err := LoadJSON(jsonFile)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	if ds.NRows() != 3 {
		t.Errorf("expected 3 rows, got %d", ds.NRows())
	}
	if ds.NCols() < 3 {
		t.Errorf("expected at least 3 columns, got %d", ds.NCols())
	}
}

func TestLoadJSON_NullBecomesMissing(t *testing.T) {
	jsonFile := testutil.TempFile(t, `[
		{"name": "Alice", "score": 95.5},
		{"name": null, "score": 87.0}
	]`, ".json")

	ds, err := LoadJSON(jsonFile)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	name, ok := ds.Column("name")
	if !ok {
		t.Fatal("expected a name column")
	}
	if !dataset.IsMissing(name, 1) {
		t.Errorf("expected name[1] missing, got %v", name.Value(1))
	}
}

func TestLoadJSON_EmptyFile(t *testing.T) {
	jsonFile := testutil.TempFile(t, "", ".json")
	if _, err := LoadJSON(jsonFile); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestLoadJSON_EmptyArray(t *testing.T) {
	jsonFile := testutil.TempFile(t, "[]", ".json")
	if _, err := LoadJSON(jsonFile); err == nil {
		t.Error("expected error for empty array")
	}
}

func TestLoadJSON_InvalidJSON(t *testing.T) {
	jsonFile := testutil.TempFile(t, "{invalid json}", ".json")
	if _, err := LoadJSON(jsonFile); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadJSON_FileNotFound(t *testing.T) {
	if _, err := LoadJSON("/nonexistent/path/file.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadJSON_MixedTypes(t *testing.T) {
	jsonFile := testutil.TempFile(t, `[
		{"id": 1, "name": "Item1", "price": 10.5, "active": true},
		{"id": 2, "name": "Item2", "price": 20.0, "active": false}
	]`, ".json")

	ds, err := LoadJSON(jsonFile)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	if ds.NRows() != 2 {
		t.Errorf("expected 2 rows, got %d", ds.NRows())
	}
	if ds.NCols() < 4 {
		t.Errorf("expected at least 4 columns, got %d", ds.NCols())
	}
}

// Parquet tests

func TestLoadParquet_FileNotFound(t *testing.T) {
	if _, err := LoadParquet("/nonexistent/path/file.parquet"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadParquet_InvalidFile(t *testing.T) {
	parquetFile := testutil.TempFile(t, "not a parquet file", ".parquet")
	if _, err := LoadParquet(parquetFile); err == nil {
		t.Error("expected error for invalid parquet file")
	}
}

func TestLoadParquet_EmptyFile(t *testing.T) {
	parquetFile := testutil.TempFile(t, "", ".parquet")
	if _, err := LoadParquet(parquetFile); err == nil {
		t.Error("expected error for empty parquet file")
	}
}
