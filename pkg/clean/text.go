package clean

import (
	"fmt"
	"strings"
	"unicode"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// standardizeText applies the requested sub-operations, in caller order, to
// every in-scope text cell. Non-text columns are silently skipped even when
// named explicitly; missing cells pass through unchanged.
func standardizeText(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	for _, step := range op.Steps {
		if step > StripSpecial {
			return nil, "", nil, fmt.Errorf("%w: %d", ErrUnknownStep, step)
		}
	}
	sc := resolveScope(ds, op.Columns, op.Rows)

	// The default scope is every text column; skips are only worth noting
	// when the caller named a non-text column explicitly.
	var notes []string
	if !op.Columns.IsAll() {
		for _, name := range sc.cols {
			if sc.in.Type(name) != dataset.Text {
				notes = append(notes, fmt.Sprintf("column %q is not text, skipped", name))
			}
		}
	}

	textCols := sc.columnsOfType(sc.in, dataset.Text)
	replacements := make(map[string]dataframe.Series, len(textCols))
	changed := 0
	for _, name := range textCols {
		s, _ := sc.in.Column(name)
		vals := dataset.Values(s)
		for i := range vals {
			str, ok := vals[i].(string)
			if !ok {
				continue
			}
			cleaned := applySteps(str, op.Steps)
			if cleaned != str {
				vals[i] = cleaned
				changed++
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
	return result, fmt.Sprintf("%d text cells standardized (%s)", changed, stepNames(op.Steps)), notes, nil
}

// trimWhitespace strips leading and trailing whitespace from every in-scope
// text cell. Non-text cells are a no-op.
func trimWhitespace(ds *dataset.Dataset, op Op) (*dataset.Dataset, string, []string, error) {
	trimOp := op
	trimOp.Steps = []TextStep{Trim}
	result, _, _, err := standardizeText(ds, trimOp)
	if err != nil {
		return nil, "", nil, err
	}
	return result, "whitespace trimmed", nil, nil
}

func applySteps(s string, steps []TextStep) string {
	for _, step := range steps {
		switch step {
		case Lowercase:
			s = strings.ToLower(s)
		case Uppercase:
			s = strings.ToUpper(s)
		case Titlecase:
			s = cases.Title(language.Und).String(s)
		case Trim:
			s = strings.TrimSpace(s)
		case StripSpecial:
			s = stripSpecial(s)
		}
	}
	return s
}

// stripSpecial removes every rune that is not alphanumeric or whitespace.
// Internal whitespace is preserved; only Trim collapses edges.
func stripSpecial(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func stepNames(steps []TextStep) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
