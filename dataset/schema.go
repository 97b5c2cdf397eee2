// Package dataset holds the tabular training data a tree is built from.
//
// A Frame is built once from string records, a CSV stream or gonum matrices.
// The kind of every feature column is decided at that point from the full
// training set and never re-derived afterwards: a column with exactly two
// distinct values is binary-categorical, any other column must be numeric.
// Nodes of a tree only ever see a View, an immutable subset of the frame rows.
package dataset

import (
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v2"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Kind is the kind of a feature column.
type Kind int

const (
	// Numeric columns are compared against a threshold.
	Numeric Kind = iota
	// Categorical columns hold exactly two levels and are compared by equality.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Task selects how the label column is interpreted.
type Task int

const (
	// Classification labels have at most two distinct values.
	Classification Task = iota
	// Regression labels are real numbers.
	Regression
)

func (t Task) String() string {
	if t == Regression {
		return "regression"
	}
	return "classification"
}

// ParseTask parses "classification" or "regression".
func ParseTask(s string) (Task, error) {
	switch s {
	case "classification":
		return Classification, nil
	case "regression":
		return Regression, nil
	default:
		return Classification, scierrors.NewValidationError("task", "must be classification or regression", s)
	}
}

// Column describes one column of a frame. Levels holds the two values of a
// categorical feature, or the class names of a classification label. Cells
// of such columns store the index into Levels.
type Column struct {
	Name   string
	Kind   Kind
	Levels []string
}

// Code returns the index of level in c.Levels.
func (c Column) Code(level string) (int, bool) {
	for i, l := range c.Levels {
		if l == level {
			return i, true
		}
	}
	return 0, false
}

// Schema is the fixed column layout of a frame.
type Schema struct {
	Features []Column
	Label    Column
}

// FeatureIndex returns the position of the named feature.
func (s Schema) FeatureIndex(name string) (int, bool) {
	for i, c := range s.Features {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Names returns the feature names in column order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Features))
	for i, c := range s.Features {
		names[i] = c.Name
	}
	return names
}

// Declaration overrides the inferred kind of a feature.
type Declaration struct {
	Kind   Kind
	Levels []string
}

// Declarations maps feature names to declared kinds.
type Declarations map[string]Declaration

// ReadSchemaYAML parses a feature declaration document of the form
//
//	features:
//	  temperature: continuous
//	  outlook: [sunny, rainy]
//
// A list declares a categorical feature. Its levels are kept in the given
// order, so the first one is the level routed left by a split.
func ReadSchemaYAML(data []byte) (Declarations, error) {
	doc := struct {
		Features map[string]interface{} `yaml:"features"`
	}{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, scierrors.Wrap(err, "scitree: parsing yaml schema")
	}
	if doc.Features == nil {
		return nil, scierrors.NewValidationError("schema", "document has no features section", nil)
	}

	decls := make(Declarations, len(doc.Features))
	for name, v := range doc.Features {
		switch values := v.(type) {
		case string:
			if values != "continuous" && values != "numeric" {
				return nil, scierrors.NewValidationError(name, "scalar declaration must be 'continuous'", values)
			}
			decls[name] = Declaration{Kind: Numeric}
		case []interface{}:
			levels := make([]string, 0, len(values))
			for _, lv := range values {
				levels = append(levels, fmt.Sprintf("%v", lv))
			}
			if len(levels) != 2 || levels[0] == levels[1] {
				return nil, scierrors.NewValidationError(name, "categorical features must declare exactly two distinct levels", levels)
			}
			decls[name] = Declaration{Kind: Categorical, Levels: levels}
		default:
			return nil, scierrors.NewValidationError(name, "invalid feature declaration", fmt.Sprintf("%T", v))
		}
	}
	return decls, nil
}

// distinct returns the sorted distinct values of s.
func distinct(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, 2)
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
