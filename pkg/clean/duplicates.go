package clean

import (
	"fmt"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// removeDuplicates keeps the first occurrence (by current row order) of each
// distinct value-tuple over the key columns and drops the rest. Rows outside
// the row scope are never compared against rows inside it.
func removeDuplicates(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	sc := resolveScope(ds, op.Columns, op.Rows)

	// An empty key after resolution falls back to all columns.
	keyCols := sc.cols
	if len(keyCols) == 0 {
		keyCols = ds.ColumnNames()
	}

	series := make([]dataframe.Series, 0, len(keyCols))
	for _, name := range keyCols {
		if s, ok := sc.in.Column(name); ok {
			series = append(series, s)
		}
	}

	n := sc.in.NRows()
	keep := dataset.NewMask(n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key := rowKey(series, i)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keep.Set(i)
		}
	}

	removed := n - keep.Count()
	result, err := sc.merge(sc.in.Select(keep))
	if err != nil {
		return nil, "", nil, err
	}
	return result, fmt.Sprintf("%d duplicate rows removed", removed), nil, nil
}

// rowKey builds an equality key for row i over the given columns. The type
// tag keeps int64(1) and "1" distinct, and missing distinct from "".
func rowKey(series []dataframe.Series, i int) string {
	var b strings.Builder
	for _, s := range series {
		v := s.Value(i)
		if v == nil {
			b.WriteString("\x00missing\x1f")
			continue
		}
		fmt.Fprintf(&b, "%T:%v\x1f", v, v)
	}
	return b.String()
}
