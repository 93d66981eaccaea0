package clean

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// convertTypes coerces each named column to the target type. A value that
// fails coercion becomes missing; it never aborts the conversion. A column
// that yields no convertible values gets a warning-level note, and the
// remaining columns still convert.
//
// Conversion rebuilds a column's storage wholesale, so a row scope cannot
// apply: a typed column cannot hold two types at once. An explicit row scope
// is ignored with a note.
func convertTypes(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	if op.Target > ToDate {
		return nil, "", nil, fmt.Errorf("%w: %d", ErrUnknownTarget, op.Target)
	}
	sc := resolveScope(ds, op.Columns, AllRows())

	var notes []string
	if !op.Rows.IsAll() {
		notes = append(notes, "row scope ignored: type conversion is a whole-column operation")
	}

	replacements := make(map[string]dataframe.Series, len(sc.cols))
	converted := 0
	for _, name := range sc.cols {
		s, _ := sc.in.Column(name)
		col, ok, warn := convertColumn(s, op.Target)
		if warn != "" {
			notes = append(notes, warn)
		}
		if ok {
			replacements[name] = col
			converted++
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
	return result, fmt.Sprintf("%d columns converted to %s", converted, op.Target), notes, nil
}

// convertColumn coerces one column. ok is false when the column is already
// the target type and nothing needs to change.
func convertColumn(s dataframe.Series, target TargetType) (dataframe.Series, bool, string) {
	n := s.NRows()
	vals := make([]interface{}, n)
	nonMissing, succeeded := 0, 0

	for i := 0; i < n; i++ {
		if dataset.IsMissing(s, i) {
			continue
		}
		nonMissing++
		if v, ok := coerceValue(s.Value(i), target); ok {
			vals[i] = v
			succeeded++
		}
	}

	var warn string
	if nonMissing > 0 && succeeded == 0 {
		warn = fmt.Sprintf("column %q: no values convertible to %s", s.Name(), target)
	}

	var col dataframe.Series
	switch target {
	case ToNumeric:
		col = dataset.NewNumericSeries(s.Name(), vals...)
	case ToText:
		col = dataset.NewTextSeries(s.Name(), vals...)
	case ToDate:
		col = dataset.NewDateSeries(s.Name(), vals...)
	default:
		return nil, false, warn
	}
	return col, true, warn
}

// coerceValue converts one non-missing value to the target type.
func coerceValue(v interface{}, target TargetType) (interface{}, bool) {
	switch target {
	case ToNumeric:
		if f, ok := toFloat(v); ok {
			return f, true
		}
		if str, ok := v.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				return f, true
			}
		}
		if b, ok := v.(bool); ok {
			if b {
				return 1.0, true
			}
			return 0.0, true
		}
		return nil, false

	case ToText:
		if t, ok := v.(time.Time); ok {
			return t.Format(DefaultDateFormat), true
		}
		return fmt.Sprintf("%v", v), true

	case ToDate:
		if t, ok := v.(time.Time); ok {
			return t, true
		}
		if str, ok := v.(string); ok {
			if t, ok := parseDate(str); ok {
				return t, true
			}
		}
		return nil, false
	}
	return nil, false
}
