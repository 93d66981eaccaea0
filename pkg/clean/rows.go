package clean

import (
	"fmt"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// removeEmptyRows drops in-scope rows where every column is missing.
// Removal is a whole-row decision, so the column scope does not apply: the
// emptiness check always spans all columns.
func removeEmptyRows(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	sc := resolveScope(ds, AllColumns(), op.Rows)

	n := sc.in.NRows()
	keep := dataset.NewMask(n)
	for i := 0; i < n; i++ {
		for _, s := range sc.in.Frame().Series {
			if !dataset.IsMissing(s, i) {
				keep.Set(i)
				break
			}
		}
	}

	removed := n - keep.Count()
	result, err := sc.merge(sc.in.Select(keep))
	if err != nil {
		return nil, "", nil, err
	}
	return result, fmt.Sprintf("%d empty rows removed", removed), nil, nil
}
