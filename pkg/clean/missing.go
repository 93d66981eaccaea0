package clean

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// handleMissing resolves missing cells within scope using op.Method.
// Drop removes rows; every fill variant replaces missing cells in place.
// Fill sources come only from inside the row scope.
func handleMissing(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	if op.Method > FillConstant {
		return nil, "", nil, fmt.Errorf("%w: %d", ErrUnknownMethod, op.Method)
	}
	sc := resolveScope(ds, op.Columns, op.Rows)

	if op.Method == Drop {
		n := sc.in.NRows()
		keep := dataset.NewFullMask(n)
		for _, name := range sc.cols {
			s, ok := sc.in.Column(name)
			if !ok {
				continue
			}
			for i := 0; i < n; i++ {
				if dataset.IsMissing(s, i) {
					keep.Clear(i)
				}
			}
		}
		removed := n - keep.Count()
		result, err := sc.merge(sc.in.Select(keep))
		if err != nil {
			return nil, "", nil, err
		}
		return result, fmt.Sprintf("%d rows with missing values dropped", removed), nil, nil
	}

	var notes []string
	changed := 0
	replacements := make(map[string]dataframe.Series, len(sc.cols))
	for _, name := range sc.cols {
		s, ok := sc.in.Column(name)
		if !ok {
			continue
		}
		filled, count, note := fillColumn(s, op)
		if note != "" {
			notes = append(notes, note)
		}
		if filled != nil && count > 0 {
			replacements[name] = filled
			changed += count
		}
	}

	in := sc.in
	if len(replacements) > 0 {
		var err error
		in, err = sc.in.ReplaceColumns(replacements)
		if err != nil {
			return nil, "", nil, err
		}
	}
	result, err := sc.merge(in)
	if err != nil {
		return nil, "", nil, err
	}
	return result, fmt.Sprintf("%d missing cells filled (%s)", changed, op.Method), notes, nil
}

// fillColumn applies one fill method to a single column. It returns the
// replacement series, the number of cells that changed from missing to
// non-missing, and an optional informational note. A nil series means the
// column was left untouched.
func fillColumn(s dataframe.Series, op Op) (dataframe.Series, int, string) {
	vals := dataset.Values(s)

	switch op.Method {
	case FillForward:
		count := 0
		var last interface{}
		for i, v := range vals {
			if v != nil {
				last = v
			} else if last != nil {
				vals[i] = last
				count++
			}
		}
		return dataset.SeriesWithValues(s, vals), count, ""

	case FillBackward:
		count := 0
		var next interface{}
		for i := len(vals) - 1; i >= 0; i-- {
			if vals[i] != nil {
				next = vals[i]
			} else if next != nil {
				vals[i] = next
				count++
			}
		}
		return dataset.SeriesWithValues(s, vals), count, ""

	case FillMean, FillMedian:
		if dataset.TypeOf(s) != dataset.Numeric {
			return nil, 0, fmt.Sprintf("column %q is not numeric, skipped", s.Name())
		}
		nums := make([]float64, 0, len(vals))
		for i := range vals {
			if f, ok := dataset.FloatAt(s, i); ok {
				nums = append(nums, f)
			}
		}
		if len(nums) == 0 {
			// Statistic of an empty set: cells stay missing.
			return nil, 0, ""
		}
		var stat float64
		if op.Method == FillMean {
			stat = mean(nums)
		} else {
			sort.Float64s(nums)
			stat = median(nums)
		}
		fill := numericFill(s, stat)
		count := 0
		for i, v := range vals {
			if v == nil {
				vals[i] = fill
				count++
			}
		}
		return dataset.SeriesWithValues(s, vals), count, ""

	case FillMode:
		mode, ok := modeOf(vals)
		if !ok {
			return nil, 0, ""
		}
		count := 0
		for i, v := range vals {
			if v == nil {
				vals[i] = mode
				count++
			}
		}
		return dataset.SeriesWithValues(s, vals), count, ""

	case FillConstant:
		fill, ok := coerceConstant(op.Constant, s)
		if !ok {
			return nil, 0, fmt.Sprintf("constant %v does not fit column %q, skipped", op.Constant, s.Name())
		}
		count := 0
		for i, v := range vals {
			if v == nil {
				vals[i] = fill
				count++
			}
		}
		return dataset.SeriesWithValues(s, vals), count, ""
	}

	return nil, 0, ""
}

func mean(nums []float64) float64 {
	var sum float64
	for _, f := range nums {
		sum += f
	}
	return sum / float64(len(nums))
}

// median expects nums sorted.
func median(nums []float64) float64 {
	n := len(nums)
	if n%2 == 1 {
		return nums[n/2]
	}
	return (nums[n/2-1] + nums[n/2]) / 2
}

// numericFill converts a statistic to the column's storage type. Int64
// columns get the rounded value so the fill stays representable.
func numericFill(s dataframe.Series, stat float64) interface{} {
	if _, ok := s.(*dataframe.SeriesInt64); ok {
		return int64(math.Round(stat))
	}
	return stat
}

// modeOf returns the most frequent non-missing value. Ties break toward the
// ordinally smallest candidate so the result is deterministic.
func modeOf(vals []interface{}) (interface{}, bool) {
	counts := make(map[string]int)
	byKey := make(map[string]interface{})
	for _, v := range vals {
		if v == nil {
			continue
		}
		k := fmt.Sprintf("%T:%v", v, v)
		counts[k]++
		byKey[k] = v
	}
	if len(counts) == 0 {
		return nil, false
	}
	var best interface{}
	bestCount := -1
	for k, c := range counts {
		v := byKey[k]
		if c > bestCount || (c == bestCount && lessValue(v, best)) {
			best = v
			bestCount = c
		}
	}
	return best, true
}

// lessValue orders candidate values: numerically where both sides are
// numeric, chronologically for times, lexicographically otherwise.
func lessValue(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af < bf
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Before(bt)
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// coerceConstant fits a caller-supplied literal into a column's storage type.
func coerceConstant(c interface{}, s dataframe.Series) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	switch s.(type) {
	case *dataframe.SeriesInt64:
		if f, ok := toFloat(c); ok {
			return int64(f), true
		}
		if str, ok := c.(string); ok {
			if n, err := strconv.ParseInt(str, 10, 64); err == nil {
				return n, true
			}
		}
		return nil, false
	case *dataframe.SeriesFloat64:
		if f, ok := toFloat(c); ok {
			return f, true
		}
		if str, ok := c.(string); ok {
			if f, err := strconv.ParseFloat(str, 64); err == nil {
				return f, true
			}
		}
		return nil, false
	case *dataframe.SeriesString:
		return fmt.Sprintf("%v", c), true
	case *dataframe.SeriesTime:
		if t, ok := c.(time.Time); ok {
			return t, true
		}
		if str, ok := c.(string); ok {
			if t, ok := parseDate(str); ok {
				return t, true
			}
		}
		return nil, false
	default:
		return c, true
	}
}
