// Package dataset wraps dataframe-go frames with the row-identifier and
// missing-value semantics the cleaning engine relies on.
//
// A Dataset pairs a *dataframe.DataFrame with a stable row-identifier slice.
// Identifiers survive filtering, so a row keeps its identity as operations
// remove its neighbors. Datasets are treated as immutable values: every
// transformation builds a new frame and leaves the input untouched.
package dataset

import (
	"errors"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Error definitions
var (
	ErrNilFrame      = errors.New("nil dataframe")
	ErrNoColumns     = errors.New("dataset has no columns")
	ErrRaggedColumns = errors.New("columns have unequal row counts")
	ErrShapeMismatch = errors.New("datasets have different columns")
)

// Dataset is an immutable tabular value: named typed columns plus a stable
// row identifier per row. Identifiers are unique but not necessarily
// contiguous after deletions.
type Dataset struct {
	frame *dataframe.DataFrame
	ids   []int
}

// FromFrame wraps a dataframe and assigns fresh sequential row identifiers.
func FromFrame(df *dataframe.DataFrame) (*Dataset, error) {
	if df == nil {
		return nil, ErrNilFrame
	}
	if len(df.Series) == 0 {
		return nil, ErrNoColumns
	}
	n := df.Series[0].NRows()
	for _, s := range df.Series[1:] {
		if s.NRows() != n {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrRaggedColumns, df.Series[0].Name(), n, s.Name(), s.NRows())
		}
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return &Dataset{frame: df, ids: ids}, nil
}

// withIDs wraps a frame whose rows are already aligned with ids.
func withIDs(df *dataframe.DataFrame, ids []int) *Dataset {
	return &Dataset{frame: df, ids: ids}
}

// Frame returns the underlying dataframe. Callers must not mutate it.
func (d *Dataset) Frame() *dataframe.DataFrame {
	return d.frame
}

// NRows returns the number of rows.
func (d *Dataset) NRows() int {
	return len(d.ids)
}

// NCols returns the number of columns.
func (d *Dataset) NCols() int {
	return len(d.frame.Series)
}

// IDs returns a copy of the row identifiers in row order.
func (d *Dataset) IDs() []int {
	out := make([]int, len(d.ids))
	copy(out, d.ids)
	return out
}

// ID returns the identifier of the row at position i.
func (d *Dataset) ID(i int) int {
	return d.ids[i]
}

// ColumnNames returns the column names in column order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.frame.Series))
	for i, s := range d.frame.Series {
		names[i] = s.Name()
	}
	return names
}

// Column returns the series for the named column.
func (d *Dataset) Column(name string) (dataframe.Series, bool) {
	idx, err := d.frame.NameToColumn(name)
	if err != nil {
		return nil, false
	}
	return d.frame.Series[idx], true
}

// Type returns the logical type of the named column.
func (d *Dataset) Type(name string) ColumnType {
	s, ok := d.Column(name)
	if !ok {
		return Mixed
	}
	return TypeOf(s)
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	series := make([]dataframe.Series, len(d.frame.Series))
	for i, s := range d.frame.Series {
		series[i] = s.Copy()
	}
	ids := make([]int, len(d.ids))
	copy(ids, d.ids)
	return withIDs(dataframe.NewDataFrame(series...), ids)
}

// Select returns a new dataset keeping only the rows the mask selects,
// in their current order. Row identifiers travel with their rows.
func (d *Dataset) Select(m *Mask) *Dataset {
	kept := make([]int, 0, m.Count())
	ids := make([]int, 0, m.Count())
	for i := 0; i < len(d.ids); i++ {
		if m.IsSet(i) {
			kept = append(kept, i)
			ids = append(ids, d.ids[i])
		}
	}
	series := make([]dataframe.Series, len(d.frame.Series))
	for ci, s := range d.frame.Series {
		vals := make([]interface{}, len(kept))
		for vi, ri := range kept {
			vals[vi] = s.Value(ri)
		}
		series[ci] = SeriesWithValues(s, vals)
	}
	return withIDs(dataframe.NewDataFrame(series...), ids)
}

// ReplaceColumns returns a new dataset where each named column is replaced
// by the given series; all other columns are copied unchanged. Replacement
// series must have the dataset's row count. Column order is preserved.
func (d *Dataset) ReplaceColumns(cols map[string]dataframe.Series) (*Dataset, error) {
	for name, col := range cols {
		if _, err := d.frame.NameToColumn(name); err != nil {
			return nil, err
		}
		if col.NRows() != len(d.ids) {
			return nil, fmt.Errorf("%w: column %q has %d rows, dataset has %d",
				ErrRaggedColumns, name, col.NRows(), len(d.ids))
		}
	}
	series := make([]dataframe.Series, len(d.frame.Series))
	for i, s := range d.frame.Series {
		if repl, ok := cols[s.Name()]; ok {
			series[i] = repl
		} else {
			series[i] = s.Copy()
		}
	}
	ids := make([]int, len(d.ids))
	copy(ids, d.ids)
	return withIDs(dataframe.NewDataFrame(series...), ids), nil
}

// Merge recombines two row-disjoint datasets with identical columns into one,
// ordered by the given row-identifier order. Identifiers in order that appear
// in neither part are skipped, so Merge naturally absorbs row deletions.
func Merge(a, b *Dataset, order []int) (*Dataset, error) {
	if len(a.frame.Series) != len(b.frame.Series) {
		return nil, ErrShapeMismatch
	}
	apos := make(map[int]int, len(a.ids))
	for i, id := range a.ids {
		apos[id] = i
	}
	bpos := make(map[int]int, len(b.ids))
	for i, id := range b.ids {
		bpos[id] = i
	}

	type pick struct {
		fromA bool
		row   int
	}
	picks := make([]pick, 0, len(order))
	ids := make([]int, 0, len(order))
	for _, id := range order {
		if r, ok := apos[id]; ok {
			picks = append(picks, pick{fromA: true, row: r})
			ids = append(ids, id)
		} else if r, ok := bpos[id]; ok {
			picks = append(picks, pick{fromA: false, row: r})
			ids = append(ids, id)
		}
	}

	series := make([]dataframe.Series, len(a.frame.Series))
	for ci, as := range a.frame.Series {
		bs, ok := b.Column(as.Name())
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrShapeMismatch, as.Name())
		}
		vals := make([]interface{}, len(picks))
		for vi, p := range picks {
			if p.fromA {
				vals[vi] = as.Value(p.row)
			} else {
				vals[vi] = bs.Value(p.row)
			}
		}
		series[ci] = SeriesWithValues(as, vals)
	}
	return withIDs(dataframe.NewDataFrame(series...), ids), nil
}
