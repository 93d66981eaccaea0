// Package clean implements the selective cleaning engine: eight scoped
// transformation operations over a dataset, a scope resolver that isolates
// the rows and columns an operation may touch, and a composition driver
// that applies an ordered list of operations and accumulates a change log.
package clean

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrNilDataset     = errors.New("nil dataset")
	ErrEmptyDataset   = errors.New("empty dataset")
	ErrUnknownKind    = errors.New("unknown operation kind")
	ErrUnknownMethod  = errors.New("unknown missing-value method")
	ErrUnknownStep    = errors.New("unknown text step")
	ErrUnknownOutlier = errors.New("unknown outlier method")
	ErrUnknownTarget  = errors.New("unknown conversion target")
)

// Kind identifies a cleaning operation. The set is closed: Apply dispatches
// over it with a single switch.
type Kind uint8

const (
	RemoveDuplicates Kind = iota
	HandleMissing
	StandardizeText
	NormalizeDates
	RemoveOutliers
	TrimWhitespace
	RemoveEmptyRows
	ConvertTypes
)

// String returns the recipe-file spelling of the kind.
func (k Kind) String() string {
	switch k {
	case RemoveDuplicates:
		return "remove_duplicates"
	case HandleMissing:
		return "handle_missing"
	case StandardizeText:
		return "standardize_text"
	case NormalizeDates:
		return "normalize_dates"
	case RemoveOutliers:
		return "remove_outliers"
	case TrimWhitespace:
		return "trim_whitespace"
	case RemoveEmptyRows:
		return "remove_empty_rows"
	case ConvertTypes:
		return "convert_types"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts the recipe-file spelling to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "remove_duplicates":
		return RemoveDuplicates, nil
	case "handle_missing":
		return HandleMissing, nil
	case "standardize_text":
		return StandardizeText, nil
	case "normalize_dates":
		return NormalizeDates, nil
	case "remove_outliers":
		return RemoveOutliers, nil
	case "trim_whitespace":
		return TrimWhitespace, nil
	case "remove_empty_rows":
		return RemoveEmptyRows, nil
	case "convert_types":
		return ConvertTypes, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ColumnSet names the columns an operation may touch. The zero value means
// all columns. Columns(...) builds an explicit set, which may be empty.
// Names that do not exist in the dataset resolve away silently.
type ColumnSet struct {
	names    []string
	explicit bool
}

// AllColumns returns the default scope covering every column.
func AllColumns() ColumnSet {
	return ColumnSet{}
}

// Columns returns an explicit column scope.
func Columns(names ...string) ColumnSet {
	return ColumnSet{names: names, explicit: true}
}

// IsAll reports whether the set covers every column.
func (c ColumnSet) IsAll() bool {
	return !c.explicit
}

// Names returns the explicit column names, nil for the all-columns set.
func (c ColumnSet) Names() []string {
	return c.names
}

// RowSet identifies the rows an operation may touch, by row identifier.
// The zero value means all rows. Rows(...) builds an explicit set, which may
// be empty. Identifiers that no longer exist resolve away silently.
type RowSet struct {
	ids      []int
	explicit bool
}

// AllRows returns the default scope covering every row.
func AllRows() RowSet {
	return RowSet{}
}

// Rows returns an explicit row scope.
func Rows(ids ...int) RowSet {
	return RowSet{ids: ids, explicit: true}
}

// IsAll reports whether the set covers every row.
func (r RowSet) IsAll() bool {
	return !r.explicit
}

// IDs returns the explicit row identifiers, nil for the all-rows set.
func (r RowSet) IDs() []int {
	return r.ids
}

// MissingMethod selects the HandleMissing strategy.
type MissingMethod uint8

const (
	Drop MissingMethod = iota
	FillForward
	FillBackward
	FillMean
	FillMedian
	FillMode
	FillConstant
)

// String returns the recipe-file spelling of the method.
func (m MissingMethod) String() string {
	switch m {
	case Drop:
		return "drop"
	case FillForward:
		return "fill_forward"
	case FillBackward:
		return "fill_backward"
	case FillMean:
		return "fill_mean"
	case FillMedian:
		return "fill_median"
	case FillMode:
		return "fill_mode"
	case FillConstant:
		return "fill_constant"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// ParseMissingMethod converts the recipe-file spelling to a MissingMethod.
func ParseMissingMethod(s string) (MissingMethod, error) {
	switch s {
	case "drop":
		return Drop, nil
	case "fill_forward":
		return FillForward, nil
	case "fill_backward":
		return FillBackward, nil
	case "fill_mean":
		return FillMean, nil
	case "fill_median":
		return FillMedian, nil
	case "fill_mode":
		return FillMode, nil
	case "fill_constant":
		return FillConstant, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// TextStep is one sub-operation of StandardizeText.
type TextStep uint8

const (
	Lowercase TextStep = iota
	Uppercase
	Titlecase
	Trim
	StripSpecial
)

// String returns the recipe-file spelling of the step.
func (t TextStep) String() string {
	switch t {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Titlecase:
		return "titlecase"
	case Trim:
		return "trim"
	case StripSpecial:
		return "strip_special_characters"
	default:
		return fmt.Sprintf("step(%d)", uint8(t))
	}
}

// ParseTextStep converts the recipe-file spelling to a TextStep.
func ParseTextStep(s string) (TextStep, error) {
	switch s {
	case "lowercase":
		return Lowercase, nil
	case "uppercase":
		return Uppercase, nil
	case "titlecase":
		return Titlecase, nil
	case "trim":
		return Trim, nil
	case "strip_special_characters":
		return StripSpecial, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
}

// OutlierMethod selects the RemoveOutliers detector.
type OutlierMethod uint8

const (
	IQR OutlierMethod = iota
	ZScore
)

// String returns the recipe-file spelling of the method.
func (m OutlierMethod) String() string {
	switch m {
	case IQR:
		return "iqr"
	case ZScore:
		return "zscore"
	default:
		return fmt.Sprintf("outlier(%d)", uint8(m))
	}
}

// ParseOutlierMethod converts the recipe-file spelling to an OutlierMethod.
func ParseOutlierMethod(s string) (OutlierMethod, error) {
	switch s {
	case "iqr":
		return IQR, nil
	case "zscore":
		return ZScore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutlier, s)
	}
}

// TargetType is the destination type of a ConvertTypes operation.
type TargetType uint8

const (
	ToNumeric TargetType = iota
	ToText
	ToDate
)

// String returns the recipe-file spelling of the target.
func (t TargetType) String() string {
	switch t {
	case ToNumeric:
		return "numeric"
	case ToText:
		return "text"
	case ToDate:
		return "date"
	default:
		return fmt.Sprintf("target(%d)", uint8(t))
	}
}

// ParseTargetType converts the recipe-file spelling to a TargetType.
func ParseTargetType(s string) (TargetType, error) {
	switch s {
	case "numeric":
		return ToNumeric, nil
	case "text":
		return ToText, nil
	case "date":
		return ToDate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}

// Op describes one cleaning operation: its kind, scope, and parameters.
// Ops are constructed per request, applied once against the current dataset
// snapshot, and discarded; only the resulting LogEntry is retained.
type Op struct {
	Kind    Kind
	Columns ColumnSet
	Rows    RowSet

	// HandleMissing
	Method   MissingMethod
	Constant interface{} // literal for FillConstant

	// StandardizeText: applied in order, each step consuming the previous output.
	Steps []TextStep

	// NormalizeDates: target output format. Go layouts and strftime tokens
	// (%Y, %m, %d, ...) are both accepted. Empty means 2006-01-02.
	Format string

	// RemoveOutliers
	Outliers OutlierMethod

	// ConvertTypes
	Target TargetType
}
