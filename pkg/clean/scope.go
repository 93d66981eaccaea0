package clean

import (
	"github.com/akhildatla/scrub/pkg/dataset"
)

// scoped is a resolved (ColumnSet, RowSet) selection: the sub-dataset an
// operation acts on, the complement that must come back untouched, and the
// recombination rule.
type scoped struct {
	in    *dataset.Dataset // rows in scope, all columns
	out   *dataset.Dataset // rows out of scope, all columns
	cols  []string         // resolved in-scope column names
	order []int            // row-identifier order before the split
}

// resolveScope splits ds by the row scope and resolves the column scope
// against the dataset's actual columns. Requested columns that do not exist
// resolve away silently; row identifiers that do not exist are likewise
// ignored. An explicit empty scope resolves to an empty selection, not to all.
func resolveScope(ds *dataset.Dataset, cols ColumnSet, rows RowSet) scoped {
	n := ds.NRows()

	var mask *dataset.Mask
	if rows.IsAll() {
		mask = dataset.NewFullMask(n)
	} else {
		mask = dataset.NewMask(n)
		wanted := make(map[int]struct{}, len(rows.IDs()))
		for _, id := range rows.IDs() {
			wanted[id] = struct{}{}
		}
		for i := 0; i < n; i++ {
			if _, ok := wanted[ds.ID(i)]; ok {
				mask.Set(i)
			}
		}
	}

	var resolved []string
	if cols.IsAll() {
		resolved = ds.ColumnNames()
	} else {
		resolved = make([]string, 0, len(cols.Names()))
		for _, name := range cols.Names() {
			if _, ok := ds.Column(name); ok {
				resolved = append(resolved, name)
			}
		}
	}

	return scoped{
		in:    ds.Select(mask),
		out:   ds.Select(mask.Not()),
		cols:  resolved,
		order: ds.IDs(),
	}
}

// merge recombines a transformed in-scope part with the untouched complement.
// The result's row-identifier order equals the order that existed before the
// split; identifiers the transformation dropped simply disappear.
func (s scoped) merge(in *dataset.Dataset) (*dataset.Dataset, error) {
	return dataset.Merge(in, s.out, s.order)
}

// columnsOfType filters the resolved columns down to those of the given
// logical type in ds.
func (s scoped) columnsOfType(ds *dataset.Dataset, t dataset.ColumnType) []string {
	out := make([]string, 0, len(s.cols))
	for _, name := range s.cols {
		if ds.Type(name) == t {
			out = append(out, name)
		}
	}
	return out
}
