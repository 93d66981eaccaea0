package clean

import (
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

func TestHandleMissing_Drop(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, 1.0, nil, 3.0),
		dataframe.NewSeriesString("tag", nil, "a", "b", nil),
	)

	result, entry, err := Apply(ds, Op{Kind: HandleMissing, Method: Drop})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.NRows() != 1 {
		t.Fatalf("expected 1 row, got %d", result.NRows())
	}
	if result.ID(0) != 0 {
		t.Errorf("expected row 0 to survive, got id %d", result.ID(0))
	}
	if entry.RowsBefore != 3 || entry.RowsAfter != 1 {
		t.Errorf("entry counts wrong: %d -> %d", entry.RowsBefore, entry.RowsAfter)
	}
}

func TestHandleMissing_DropScopedToColumn(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, 1.0, nil, 3.0),
		dataframe.NewSeriesString("tag", nil, "a", "b", nil),
	)

	// Only x in scope: row 2's missing tag must not drop the row.
	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: Drop, Columns: Columns("x")})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.NRows() != 2 {
		t.Errorf("expected 2 rows, got %d", result.NRows())
	}
}

func TestHandleMissing_FillMean(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, 10.0, nil, 30.0),
	)

	result, entry, err := Apply(ds, Op{Kind: HandleMissing, Method: FillMean})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("x")
	if v, ok := dataset.FloatAt(s, 1); !ok || v != 20.0 {
		t.Errorf("expected 20.0, got %v (ok=%v)", v, ok)
	}
	if entry.Summary != "1 missing cells filled (fill_mean)" {
		t.Errorf("unexpected summary: %q", entry.Summary)
	}
}

func TestHandleMissing_FillMean_AllMissingStaysMissing(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, nil, nil),
		dataframe.NewSeriesInt64("anchor", nil, 1, 2),
	)

	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillMean, Columns: Columns("x")})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("x")
	if !dataset.IsMissing(s, 0) || !dataset.IsMissing(s, 1) {
		t.Error("statistic of an empty set: cells must stay missing")
	}
}

func TestHandleMissing_FillMedian(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, 1.0, 2.0, nil, 100.0),
	)
	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillMedian})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("x")
	if v, _ := dataset.FloatAt(s, 2); v != 2.0 {
		t.Errorf("expected median 2.0, got %v", v)
	}
}

func TestHandleMissing_FillMean_SkipsNonNumeric(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("tag", nil, "a", nil),
		dataframe.NewSeriesFloat64("x", nil, 4.0, nil),
	)
	result, entry, err := Apply(ds, Op{Kind: HandleMissing, Method: FillMean})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	tag, _ := result.Column("tag")
	if !dataset.IsMissing(tag, 1) {
		t.Error("non-numeric column should be untouched")
	}
	x, _ := result.Column("x")
	if v, _ := dataset.FloatAt(x, 1); v != 4.0 {
		t.Errorf("numeric column should fill, got %v", v)
	}
	if len(entry.Notes) == 0 {
		t.Error("expected an informational note about the skipped column")
	}
}

func TestHandleMissing_FillForwardBackward(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, nil, "a", nil, "b", nil),
	)

	fwd, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillForward})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := fwd.Column("v")
	wantFwd := []interface{}{nil, "a", "a", "b", "b"}
	for i, w := range wantFwd {
		if got := s.Value(i); got != w {
			t.Errorf("ffill row %d: expected %v, got %v", i, w, got)
		}
	}

	bwd, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillBackward})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ = bwd.Column("v")
	wantBwd := []interface{}{"a", "a", "b", "b", nil}
	for i, w := range wantBwd {
		if got := s.Value(i); got != w {
			t.Errorf("bfill row %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestHandleMissing_FillForward_RowScopeSupplyBoundary(t *testing.T) {
	// Values outside the row scope never supply a fill source: row 0 holds
	// "a" but is out of scope, so row 1's gap has no preceding source.
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "a", nil, "b", nil),
	)

	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillForward, Rows: Rows(1, 2, 3)})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("v")
	if !dataset.IsMissing(s, 1) {
		t.Error("row 1 should stay missing: its only source is out of scope")
	}
	if v, _ := dataset.StringAt(s, 3); v != "b" {
		t.Errorf("row 3 should fill from in-scope row 2, got %q", v)
	}
}

func TestHandleMissing_FillMode_Deterministic(t *testing.T) {
	// "a" and "b" both occur twice; the ordinally smaller candidate wins.
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "b", "a", "b", "a", nil),
	)
	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillMode})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("v")
	if v, _ := dataset.StringAt(s, 4); v != "a" {
		t.Errorf("expected tie-break toward \"a\", got %q", v)
	}
}

func TestHandleMissing_FillConstant(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("tag", nil, "a", nil),
		dataframe.NewSeriesFloat64("x", nil, 1.0, nil),
		dataframe.NewSeriesInt64("n", nil, 5, nil),
	)

	result, _, err := Apply(ds, Op{Kind: HandleMissing, Method: FillConstant, Constant: 0})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	tag, _ := result.Column("tag")
	if v, _ := dataset.StringAt(tag, 1); v != "0" {
		t.Errorf("text column: expected \"0\", got %q", v)
	}
	x, _ := result.Column("x")
	if v, _ := dataset.FloatAt(x, 1); v != 0.0 {
		t.Errorf("float column: expected 0, got %v", v)
	}
	n, _ := result.Column("n")
	if v := n.Value(1); v != int64(0) {
		t.Errorf("int column: expected int64(0), got %v (%T)", v, v)
	}
}

func TestHandleMissing_FillConstant_UncoercibleSkipsWithNote(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesFloat64("x", nil, 1.0, nil),
	)
	result, entry, err := Apply(ds, Op{Kind: HandleMissing, Method: FillConstant, Constant: "not-a-number"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("x")
	if !dataset.IsMissing(s, 1) {
		t.Error("uncoercible constant should leave the cell missing")
	}
	if len(entry.Notes) == 0 {
		t.Error("expected a note about the skipped column")
	}
}

func TestModeOf_TieBreakNumeric(t *testing.T) {
	v, ok := modeOf([]interface{}{int64(3), int64(1), int64(3), int64(1)})
	if !ok || v != int64(1) {
		t.Errorf("expected int64(1), got %v (ok=%v)", v, ok)
	}
}
