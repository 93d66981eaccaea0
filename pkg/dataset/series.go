package dataset

import (
	"fmt"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// ColumnType is the logical type of a column.
type ColumnType uint8

const (
	Numeric ColumnType = iota // SeriesInt64 or SeriesFloat64
	Text                      // SeriesString
	Date                      // SeriesTime
	Bool                      // SeriesGeneric holding bools
	Mixed                     // anything else
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Date:
		return "date"
	case Bool:
		return "bool"
	default:
		return "mixed"
	}
}

// TypeOf returns the logical ColumnType for a dataframe-go Series.
func TypeOf(s dataframe.Series) ColumnType {
	switch ss := s.(type) {
	case *dataframe.SeriesInt64, *dataframe.SeriesFloat64:
		return Numeric
	case *dataframe.SeriesString:
		return Text
	case *dataframe.SeriesTime:
		return Date
	case *dataframe.SeriesGeneric:
		if ss.NRows() > 0 {
			if _, ok := ss.Value(0).(bool); ok {
				return Bool
			}
		}
		return Mixed
	default:
		return Mixed
	}
}

// IsMissing reports whether the cell at row i holds the missing marker.
func IsMissing(s dataframe.Series, i int) bool {
	if s == nil || i < 0 || i >= s.NRows() {
		return true
	}
	return s.Value(i) == nil
}

// FloatAt extracts a float64 from a Series at row i.
// ok is false for missing cells and non-numeric values.
func FloatAt(s dataframe.Series, i int) (float64, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return 0, false
	}
	switch v := s.Value(i).(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// StringAt extracts a string from a Series at row i.
// ok is false for missing cells and non-string values.
func StringAt(s dataframe.Series, i int) (string, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return "", false
	}
	if str, ok := s.Value(i).(string); ok {
		return str, true
	}
	return "", false
}

// TimeAt extracts a time.Time from a Series at row i.
func TimeAt(s dataframe.Series, i int) (time.Time, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return time.Time{}, false
	}
	if t, ok := s.Value(i).(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

// BoolAt extracts a bool from a Series at row i.
func BoolAt(s dataframe.Series, i int) (bool, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return false, false
	}
	if b, ok := s.Value(i).(bool); ok {
		return b, true
	}
	return false, false
}

// FormatCell renders the cell at row i for display and text serialization.
// Missing cells render as the empty string.
func FormatCell(s dataframe.Series, i int) string {
	if IsMissing(s, i) {
		return ""
	}
	switch v := s.Value(i).(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NewNumericSeries creates a SeriesFloat64 with the given name and values.
// nil entries become missing.
func NewNumericSeries(name string, vals ...interface{}) *dataframe.SeriesFloat64 {
	return dataframe.NewSeriesFloat64(name, nil, vals...)
}

// NewTextSeries creates a SeriesString with the given name and values.
func NewTextSeries(name string, vals ...interface{}) *dataframe.SeriesString {
	return dataframe.NewSeriesString(name, nil, vals...)
}

// NewDateSeries creates a SeriesTime with the given name and values.
func NewDateSeries(name string, vals ...interface{}) *dataframe.SeriesTime {
	return dataframe.NewSeriesTime(name, nil, vals...)
}

// firstConcrete finds a sample value for SeriesGeneric's concrete-type
// parameter: the first non-missing cell of proto, falling back to vals.
func firstConcrete(proto dataframe.Series, vals []interface{}) interface{} {
	for i := 0; i < proto.NRows(); i++ {
		if v := proto.Value(i); v != nil {
			return v
		}
	}
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return false
}

// Values copies every cell of a Series into an []interface{}.
// Missing cells copy as nil.
func Values(s dataframe.Series) []interface{} {
	n := s.NRows()
	vals := make([]interface{}, n)
	for i := 0; i < n; i++ {
		vals[i] = s.Value(i)
	}
	return vals
}

// SeriesWithValues builds a new series of the same concrete type as proto
// holding vals. It is how operations rebuild a column without mutating the
// source.
func SeriesWithValues(proto dataframe.Series, vals []interface{}) dataframe.Series {
	name := proto.Name()
	switch p := proto.(type) {
	case *dataframe.SeriesInt64:
		return dataframe.NewSeriesInt64(name, nil, vals...)
	case *dataframe.SeriesFloat64:
		return dataframe.NewSeriesFloat64(name, nil, vals...)
	case *dataframe.SeriesString:
		return dataframe.NewSeriesString(name, nil, vals...)
	case *dataframe.SeriesTime:
		return dataframe.NewSeriesTime(name, nil, vals...)
	case *dataframe.SeriesGeneric:
		return dataframe.NewSeriesGeneric(name, firstConcrete(p, vals), nil, vals...)
	default:
		return dataframe.NewSeriesGeneric(name, firstConcrete(proto, vals), nil, vals...)
	}
}
