package clean

import (
	"fmt"
	"strings"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// Recognized literal date patterns, tried in order.
var dateLayouts = []string{
	"2006-01-02", // YYYY-MM-DD
	"01/02/2006", // MM/DD/YYYY
	"01-02-2006", // MM-DD-YYYY
}

// DefaultDateFormat is the target format when an Op leaves Format empty.
const DefaultDateFormat = "2006-01-02"

// How many non-missing values auto-detection samples per column.
const dateSampleSize = 20

// normalizeDates reformats in-scope date-like text cells to the target
// format. Cells that fail to parse degrade to missing; the operation itself
// never fails over one bad cell.
//
// When no column scope is given, columns are auto-detected: a text column
// qualifies if a majority of a bounded sample of its non-missing values match
// a recognized pattern. The heuristic can both false-positive on
// numeric-looking text and false-negative on a minority format in a mixed
// column; that is an accepted limitation of detection, not a parsing bug.
func normalizeDates(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	sc := resolveScope(ds, op.Columns, op.Rows)

	layout := targetLayout(op.Format)

	var cols []string
	if op.Columns.IsAll() {
		for _, name := range sc.columnsOfType(sc.in, dataset.Text) {
			s, _ := sc.in.Column(name)
			if looksLikeDates(s) {
				cols = append(cols, name)
			}
		}
	} else {
		cols = sc.columnsOfType(sc.in, dataset.Text)
	}

	replacements := make(map[string]dataframe.Series, len(cols))
	normalized, degraded := 0, 0
	for _, name := range cols {
		s, _ := sc.in.Column(name)
		vals := dataset.Values(s)
		for i := range vals {
			str, ok := vals[i].(string)
			if !ok {
				continue
			}
			if t, ok := parseDate(str); ok {
				vals[i] = t.Format(layout)
				normalized++
			} else {
				vals[i] = nil
				degraded++
			}
		}
		replacements[name] = dataset.SeriesWithValues(s, vals)
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

	var notes []string
	if degraded > 0 {
		notes = append(notes, fmt.Sprintf("%d unparseable cells set to missing", degraded))
	}
	summary := fmt.Sprintf("%d dates normalized to %s in %d columns", normalized, layout, len(cols))
	return result, summary, notes, nil
}

// parseDate tries each recognized layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// looksLikeDates samples a column's non-missing values and reports whether a
// majority parse as dates.
func looksLikeDates(s dataframe.Series) bool {
	n := s.NRows()
	sampled, matched := 0, 0
	for i := 0; i < n && sampled < dateSampleSize; i++ {
		str, ok := dataset.StringAt(s, i)
		if !ok {
			continue
		}
		sampled++
		if _, ok := parseDate(str); ok {
			matched++
		}
	}
	return sampled > 0 && matched*2 > sampled
}

// targetLayout accepts either a Go reference layout or strftime tokens, so
// recipes ported from tools that write %Y-%m-%d work unchanged.
func targetLayout(format string) string {
	if format == "" {
		return DefaultDateFormat
	}
	if !strings.Contains(format, "%") {
		return format
	}
	r := strings.NewReplacer(
		"%Y", "2006",
		"%y", "06",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%M", "04",
		"%S", "05",
	)
	return r.Replace(format)
}
