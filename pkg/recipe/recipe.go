// Package recipe parses YAML cleaning recipes into ordered operation
// descriptors. A recipe is the batch counterpart of an interactive session:
// authored once, applied to a dataset in file order.
//
// Example:
//
//	operations:
//	  - kind: trim_whitespace
//	  - kind: handle_missing
//	    method: fill_mean
//	    columns: [age, salary]
//	  - kind: normalize_dates
//	    format: "%Y-%m-%d"
//	  - kind: remove_outliers
//	    method: iqr
//
// Unknown kinds, methods, steps, and targets are parse errors: recipes are
// authored up front, and failing fast beats a half-applied batch.
package recipe

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/akhildatla/scrub/pkg/clean"
)

// Error definitions
var (
	ErrEmptyRecipe = errors.New("recipe has no operations")
)

type rawRecipe struct {
	Operations []rawOp `yaml:"operations"`
}

type rawOp struct {
	Kind     string      `yaml:"kind"`
	Columns  []string    `yaml:"columns"`
	Rows     []int       `yaml:"rows"`
	Method   string      `yaml:"method"`
	Constant interface{} `yaml:"constant"`
	Steps    []string    `yaml:"steps"`
	Format   string      `yaml:"format"`
	Target   string      `yaml:"target"`
}

// Parse converts recipe YAML into an ordered operation list.
func Parse(data []byte) ([]clean.Op, error) {
	var raw rawRecipe
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}
	if len(raw.Operations) == 0 {
		return nil, ErrEmptyRecipe
	}

	ops := make([]clean.Op, 0, len(raw.Operations))
	for i, r := range raw.Operations {
		op, err := r.toOp()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ParseFile reads and parses a recipe file.
func ParseFile(path string) ([]clean.Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (r rawOp) toOp() (clean.Op, error) {
	kind, err := clean.ParseKind(r.Kind)
	if err != nil {
		return clean.Op{}, err
	}

	op := clean.Op{
		Kind:     kind,
		Constant: r.Constant,
		Format:   r.Format,
	}
	// An absent list means the default all-scope; a present (even empty)
	// list is an explicit scope.
	if r.Columns != nil {
		op.Columns = clean.Columns(r.Columns...)
	}
	if r.Rows != nil {
		op.Rows = clean.Rows(r.Rows...)
	}

	switch kind {
	case clean.HandleMissing:
		if r.Method == "" {
			return clean.Op{}, fmt.Errorf("handle_missing requires a method")
		}
		op.Method, err = clean.ParseMissingMethod(r.Method)
		if err != nil {
			return clean.Op{}, err
		}
		if op.Method == clean.FillConstant && r.Constant == nil {
			return clean.Op{}, fmt.Errorf("fill_constant requires a constant")
		}
	case clean.StandardizeText:
		if len(r.Steps) == 0 {
			return clean.Op{}, fmt.Errorf("standardize_text requires steps")
		}
		op.Steps = make([]clean.TextStep, len(r.Steps))
		for i, s := range r.Steps {
			op.Steps[i], err = clean.ParseTextStep(s)
			if err != nil {
				return clean.Op{}, err
			}
		}
	case clean.RemoveOutliers:
		if r.Method == "" {
			return clean.Op{}, fmt.Errorf("remove_outliers requires a method")
		}
		op.Outliers, err = clean.ParseOutlierMethod(r.Method)
		if err != nil {
			return clean.Op{}, err
		}
	case clean.ConvertTypes:
		if r.Target == "" {
			return clean.Op{}, fmt.Errorf("convert_types requires a target")
		}
		op.Target, err = clean.ParseTargetType(r.Target)
		if err != nil {
			return clean.Op{}, err
		}
	}
	return op, nil
}
