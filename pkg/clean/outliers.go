package clean

import (
	"fmt"
	"math"
	"sort"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// removeOutliers drops in-scope rows whose value in any in-scope numeric
// column falls outside that column's bounds. Bounds for every column are
// computed once, up front, from the pristine scoped values, then applied in
// a single combined removal pass, so the result does not depend on column
// iteration order.
func removeOutliers(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	if op.Outliers > ZScore {
		return nil, "", nil, fmt.Errorf("%w: %d", ErrUnknownOutlier, op.Outliers)
	}
	sc := resolveScope(ds, op.Columns, op.Rows)
	cols := sc.columnsOfType(sc.in, dataset.Numeric)

	type bound struct {
		name     string
		lo, hi   float64
		hasBound bool
	}
	bounds := make([]bound, 0, len(cols))
	for _, name := range cols {
		s, _ := sc.in.Column(name)
		nums := make([]float64, 0, s.NRows())
		for i := 0; i < s.NRows(); i++ {
			if f, ok := dataset.FloatAt(s, i); ok {
				nums = append(nums, f)
			}
		}
		b := bound{name: name}
		switch op.Outliers {
		case IQR:
			if len(nums) > 0 {
				sort.Float64s(nums)
				q1 := quantile(nums, 0.25)
				q3 := quantile(nums, 0.75)
				iqr := q3 - q1
				b.lo, b.hi = q1-1.5*iqr, q3+1.5*iqr
				b.hasBound = true
			}
		case ZScore:
			if len(nums) > 1 {
				m := mean(nums)
				sd := stddev(nums, m)
				if sd > 0 {
					b.lo, b.hi = m-3*sd, m+3*sd
					b.hasBound = true
				}
			}
		}
		bounds = append(bounds, b)
	}

	n := sc.in.NRows()
	keep := dataset.NewFullMask(n)
	for _, b := range bounds {
		if !b.hasBound {
			continue
		}
		s, _ := sc.in.Column(b.name)
		for i := 0; i < n; i++ {
			if f, ok := dataset.FloatAt(s, i); ok && (f < b.lo || f > b.hi) {
				keep.Clear(i)
			}
		}
	}

	removed := n - keep.Count()
	result, err := sc.merge(sc.in.Select(keep))
	if err != nil {
		return nil, "", nil, err
	}
	summary := fmt.Sprintf("%d outlier rows removed (%s, %d columns)", removed, op.Outliers, len(cols))
	return result, summary, nil, nil
}

// quantile computes the q-th quantile of sorted values with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// stddev computes the population standard deviation.
func stddev(nums []float64, mean float64) float64 {
	var sum float64
	for _, f := range nums {
		d := f - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(nums)))
}
