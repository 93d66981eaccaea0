package clean

import (
	"errors"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

func TestApply_NilAndEmptyDataset(t *testing.T) {
	if _, _, err := Apply(nil, Op{Kind: TrimWhitespace}); !errors.Is(err, ErrNilDataset) {
		t.Errorf("expected ErrNilDataset, got %v", err)
	}

	empty := makeDS(t, dataframe.NewSeriesFloat64("x", nil))
	if _, _, err := Apply(empty, Op{Kind: TrimWhitespace}); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset for zero rows, got %v", err)
	}
}

func TestApply_UnknownKind(t *testing.T) {
	ds := makeDS(t, dataframe.NewSeriesFloat64("x", nil, 1.0))
	if _, _, err := Apply(ds, Op{Kind: Kind(99)}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestApply_LogEntryCounts(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("a", nil, "x", "x", "y"),
	)
	_, entry, err := Apply(ds, Op{Kind: RemoveDuplicates})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if entry.Kind != RemoveDuplicates {
		t.Errorf("entry kind = %v", entry.Kind)
	}
	if entry.RowsBefore != 3 || entry.RowsAfter != 2 {
		t.Errorf("expected rows 3 -> 2, got %d -> %d", entry.RowsBefore, entry.RowsAfter)
	}
	if entry.Failed {
		t.Error("successful operation marked failed")
	}
}

// Operations compose sequentially, and the order is observable: deduplicating
// before dropping missing values can end with a different row set than the
// reverse order.
func TestRun_OrderMatters(t *testing.T) {
	build := func() *dataset.Dataset {
		return makeDS(t,
			dataframe.NewSeriesInt64("k", nil, 1, 1),
			dataframe.NewSeriesInt64("v", nil, nil, 2),
		)
	}
	dedupe := Op{Kind: RemoveDuplicates, Columns: Columns("k")}
	drop := Op{Kind: HandleMissing, Method: Drop}

	a, _, err := Run(build(), []Op{dedupe, drop})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, _, err := Run(build(), []Op{drop, dedupe})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Dedupe keeps the first (1, missing) row, which drop then removes.
	// Drop first removes only that row, leaving (1, 2) for dedupe to keep.
	if a.NRows() != 0 {
		t.Errorf("dedupe-then-drop: expected 0 rows, got %d", a.NRows())
	}
	if b.NRows() != 1 {
		t.Errorf("drop-then-dedupe: expected 1 row, got %d", b.NRows())
	}
}

func TestRun_EachOpSeesPreviousResult(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("name", nil, "  Bob ", "  Bob ", "eve"),
	)
	result, log, err := Run(ds, []Op{
		{Kind: TrimWhitespace},
		{Kind: StandardizeText, Steps: []TextStep{Lowercase}},
		{Kind: RemoveDuplicates},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(log))
	}
	if result.NRows() != 2 {
		t.Fatalf("expected 2 rows after the pipeline, got %d", result.NRows())
	}
	s, _ := result.Column("name")
	if v, _ := dataset.StringAt(s, 0); v != "bob" {
		t.Errorf("expected %q, got %q", "bob", v)
	}
	if result.ID(1) != 2 {
		t.Errorf("surviving row should keep its original id, got %d", result.ID(1))
	}
}

func TestRun_FailedOpIsIsolated(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("name", nil, " a ", " b "),
	)
	result, log, err := Run(ds, []Op{
		{Kind: HandleMissing, Method: MissingMethod(99)},
		{Kind: TrimWhitespace},
	})
	if err != nil {
		t.Fatalf("Run should not halt on an operation failure: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	if !log[0].Failed {
		t.Error("first entry should be marked failed")
	}
	if log[0].RowsBefore != 2 || log[0].RowsAfter != 2 {
		t.Errorf("failed entry should report an unchanged row count, got %d -> %d",
			log[0].RowsBefore, log[0].RowsAfter)
	}
	if log[1].Failed {
		t.Error("second entry should have run normally")
	}
	s, _ := result.Column("name")
	if v, _ := dataset.StringAt(s, 0); v != "a" {
		t.Errorf("trim should still have applied, got %q", v)
	}
}

func TestRun_EmptyDatasetIsFatal(t *testing.T) {
	empty := makeDS(t, dataframe.NewSeriesFloat64("x", nil))
	if _, _, err := Run(empty, []Op{{Kind: TrimWhitespace}}); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("name", nil, " a ", " a ", "b"),
	)
	sess, err := NewSession(ds)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	entry := sess.Apply(Op{Kind: TrimWhitespace})
	if entry.Failed {
		t.Fatalf("trim failed: %s", entry.Summary)
	}
	entry = sess.Apply(Op{Kind: RemoveDuplicates})
	if entry.RowsBefore != 3 || entry.RowsAfter != 2 {
		t.Errorf("expected rows 3 -> 2, got %d -> %d", entry.RowsBefore, entry.RowsAfter)
	}

	if sess.Dataset().NRows() != 2 {
		t.Errorf("current snapshot should have 2 rows, got %d", sess.Dataset().NRows())
	}
	if sess.Original().NRows() != 3 {
		t.Errorf("original snapshot should be untouched, got %d rows", sess.Original().NRows())
	}
	if len(sess.Log()) != 2 {
		t.Errorf("expected 2 log entries, got %d", len(sess.Log()))
	}

	// Log returns a copy; mutating it must not corrupt the session.
	sess.Log()[0].Failed = true
	if sess.Log()[0].Failed {
		t.Error("session log was mutated through the returned slice")
	}

	sess.Reset()
	if sess.Dataset().NRows() != 3 {
		t.Errorf("reset should restore the original, got %d rows", sess.Dataset().NRows())
	}
	if len(sess.Log()) != 0 {
		t.Errorf("reset should clear the log, got %d entries", len(sess.Log()))
	}
}

func TestSession_FailureRecordedAndStatePreserved(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("name", nil, "a", "b"),
	)
	sess, err := NewSession(ds)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	entry := sess.Apply(Op{Kind: Kind(99)})
	if !entry.Failed {
		t.Error("unknown kind should produce a failed entry")
	}
	if sess.Dataset().NRows() != 2 {
		t.Error("failed operation must leave the snapshot unchanged")
	}
	if len(sess.Log()) != 1 || !sess.Log()[0].Failed {
		t.Error("failure should be recorded in the log")
	}
}
