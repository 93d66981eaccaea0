package clean

import (
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/scrub/pkg/dataset"
)

func TestStandardizeText_StepsApplyInCallerOrder(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "  Hello, World!  "),
	)

	// trim then lowercase then strip: "hello world"
	result, _, err := Apply(ds, Op{
		Kind:  StandardizeText,
		Steps: []TextStep{Trim, Lowercase, StripSpecial},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("v")
	if v, _ := dataset.StringAt(s, 0); v != "hello world" {
		t.Errorf("expected \"hello world\", got %q", v)
	}
}

func TestStandardizeText_OrderMatters(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "ab cd"),
	)

	upperThenTitle, _, err := Apply(ds, Op{Kind: StandardizeText, Steps: []TextStep{Uppercase, Titlecase}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	titleThenUpper, _, err := Apply(ds, Op{Kind: StandardizeText, Steps: []TextStep{Titlecase, Uppercase}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	a, _ := upperThenTitle.Column("v")
	b, _ := titleThenUpper.Column("v")
	av, _ := dataset.StringAt(a, 0)
	bv, _ := dataset.StringAt(b, 0)
	if av != "Ab Cd" {
		t.Errorf("uppercase then titlecase: expected \"Ab Cd\", got %q", av)
	}
	if bv != "AB CD" {
		t.Errorf("titlecase then uppercase: expected \"AB CD\", got %q", bv)
	}
}

func TestStandardizeText_StripKeepsInternalWhitespace(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "a-b  c_d!"),
	)
	result, _, err := Apply(ds, Op{Kind: StandardizeText, Steps: []TextStep{StripSpecial}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("v")
	if v, _ := dataset.StringAt(s, 0); v != "ab  cd" {
		t.Errorf("expected \"ab  cd\", got %q", v)
	}
}

func TestStandardizeText_NumericColumnsSilentlySkipped(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "X"),
		dataframe.NewSeriesFloat64("x", nil, 1.5),
	)
	result, entry, err := Apply(ds, Op{
		Kind:    StandardizeText,
		Columns: Columns("v", "x"),
		Steps:   []TextStep{Lowercase},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	x, _ := result.Column("x")
	if v, _ := dataset.FloatAt(x, 0); v != 1.5 {
		t.Errorf("numeric column changed: %v", v)
	}
	v, _ := result.Column("v")
	if got, _ := dataset.StringAt(v, 0); got != "x" {
		t.Errorf("text column should lowercase, got %q", got)
	}
	if len(entry.Notes) == 0 {
		t.Error("explicitly named non-text column should produce a note")
	}
}

func TestStandardizeText_MissingPassesThrough(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, nil, "A"),
	)
	result, _, err := Apply(ds, Op{Kind: StandardizeText, Steps: []TextStep{Lowercase}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s, _ := result.Column("v")
	if !dataset.IsMissing(s, 0) {
		t.Error("missing cell should pass through unchanged")
	}
}

func TestTrimWhitespace_Idempotent(t *testing.T) {
	ds := makeDS(t,
		dataframe.NewSeriesString("v", nil, "  a  ", "\tb\n", "c"),
		dataframe.NewSeriesInt64("n", nil, 1, 2, 3),
	)

	once, _, err := Apply(ds, Op{Kind: TrimWhitespace})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	twice, _, err := Apply(once, Op{Kind: TrimWhitespace})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	a, _ := once.Column("v")
	b, _ := twice.Column("v")
	for i := 0; i < 3; i++ {
		if a.Value(i) != b.Value(i) {
			t.Errorf("row %d: trim not idempotent: %v vs %v", i, a.Value(i), b.Value(i))
		}
	}
	if v, _ := dataset.StringAt(a, 0); v != "a" {
		t.Errorf("expected \"a\", got %q", v)
	}
}
