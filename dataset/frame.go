package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Sample is a single record keyed by column name, as used at predict time.
type Sample map[string]string

// Frame is a rectangular, encoded training table. Rows of X follow
// Schema.Features; categorical cells hold level codes. Y holds class codes
// for classification and raw values for regression.
type Frame struct {
	Schema Schema
	Task   Task
	X      [][]float64
	Y      []float64
}

// Option configures frame construction.
type Option func(*options)

type options struct {
	decls Declarations
}

// WithSchema overrides inferred feature kinds with declared ones.
func WithSchema(decls Declarations) Option {
	return func(o *options) {
		o.decls = decls
	}
}

// Infer builds a frame from string records. header names every column and
// label selects the label column; all other columns become features in
// header order.
func Infer(header []string, records [][]string, label string, task Task, opts ...Option) (*Frame, error) {
	const op = "dataset.Infer"

	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(header) == 0 {
		return nil, scierrors.NewValidationError("header", "must name at least one column", header)
	}
	if len(records) == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, op)
	}

	labelIdx := -1
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if seen[h] {
			return nil, scierrors.NewValidationError("header", "duplicate column name", h)
		}
		seen[h] = true
		if h == label {
			labelIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, scierrors.NewValidationError("label", "column not found in header", label)
	}
	for name := range cfg.decls {
		if !seen[name] || name == label {
			return nil, scierrors.NewValidationError("schema", "declared feature is not a feature column", name)
		}
	}
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, scierrors.Wrapf(scierrors.NewDimensionError(op, len(header), len(rec), 1), "record %d", i)
		}
	}

	n := len(records)
	f := &Frame{Task: task, X: make([][]float64, n)}
	for i := range f.X {
		f.X[i] = make([]float64, 0, len(header)-1)
	}

	column := make([]string, n)
	for j, name := range header {
		for i, rec := range records {
			column[i] = strings.TrimSpace(rec[j])
			if isMissing(column[i]) {
				return nil, scierrors.Wrapf(scierrors.NewValidationError(name, "missing values are not supported", rec[j]), "record %d", i)
			}
		}

		if j == labelIdx {
			col, y, err := encodeLabel(name, column, task)
			if err != nil {
				return nil, err
			}
			f.Schema.Label = col
			f.Y = y
			continue
		}

		col, err := inferColumn(name, column, cfg.decls)
		if err != nil {
			return nil, err
		}
		for i, v := range column {
			x, err := encodeCell(op, col, v, i)
			if err != nil {
				return nil, err
			}
			f.X[i] = append(f.X[i], x)
		}
		f.Schema.Features = append(f.Schema.Features, col)
	}

	if len(f.Schema.Features) == 0 {
		return nil, scierrors.NewValidationError("header", "no feature columns besides the label", header)
	}
	return f, nil
}

// FromMatrix builds a frame from numeric matrices. Every feature is numeric;
// y must be a column vector. names may be nil, in which case features are
// called x0, x1, ...
func FromMatrix(X, y mat.Matrix, names []string, task Task) (*Frame, error) {
	const op = "dataset.FromMatrix"

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, op)
	}
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return nil, scierrors.NewDimensionError(op, 1, yCols, 1)
	}
	if yRows != rows {
		return nil, scierrors.NewDimensionError(op, rows, yRows, 0)
	}
	if names == nil {
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j)
		}
	}
	if len(names) != cols {
		return nil, scierrors.NewDimensionError(op, cols, len(names), 1)
	}
	if err := scierrors.CheckMatrix(op, X, rows, cols); err != nil {
		return nil, err
	}
	if err := scierrors.CheckMatrix(op, y, rows, 1); err != nil {
		return nil, err
	}

	f := &Frame{Task: task, X: make([][]float64, rows), Y: make([]float64, rows)}
	for _, name := range names {
		f.Schema.Features = append(f.Schema.Features, Column{Name: name, Kind: Numeric})
	}
	for i := 0; i < rows; i++ {
		f.X[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			f.X[i][j] = X.At(i, j)
		}
	}

	f.Schema.Label = Column{Name: "y", Kind: Numeric}
	if task == Regression {
		for i := range f.Y {
			f.Y[i] = y.At(i, 0)
		}
		return f, nil
	}

	classes := make([]float64, 0, 2)
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if !containsFloat(classes, v) {
			classes = append(classes, v)
		}
	}
	if len(classes) > 2 {
		return nil, scierrors.NewValueError(op, fmt.Sprintf("classification requires at most 2 classes, got %d", len(classes)))
	}
	sort.Float64s(classes)
	levels := make([]string, len(classes))
	for k, c := range classes {
		levels[k] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	f.Schema.Label = Column{Name: "y", Kind: Categorical, Levels: levels}
	for i := range f.Y {
		if y.At(i, 0) == classes[0] {
			f.Y[i] = 0
		} else {
			f.Y[i] = 1
		}
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Y) }

// NumFeatures returns the number of feature columns.
func (f *Frame) NumFeatures() int { return len(f.Schema.Features) }

// All returns a view over every row of the frame.
func (f *Frame) All() View {
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}
	return View{frame: f, rows: rows}
}

// ClassName returns the label value a class code stands for.
func (f *Frame) ClassName(code int) string {
	if code >= 0 && code < len(f.Schema.Label.Levels) {
		return f.Schema.Label.Levels[code]
	}
	return strconv.Itoa(code)
}

// Encode converts a sample into a feature vector laid out like X. Every
// feature must be present and categorical values must be one of the
// column's levels.
func (f *Frame) Encode(sample Sample) ([]float64, error) {
	const op = "dataset.Encode"

	x := make([]float64, len(f.Schema.Features))
	for j, col := range f.Schema.Features {
		v, ok := sample[col.Name]
		if !ok {
			return nil, scierrors.NewMissingFeatureError(op, col.Name)
		}
		enc, err := encodeCell(op, col, strings.TrimSpace(v), -1)
		if err != nil {
			return nil, err
		}
		x[j] = enc
	}
	return x, nil
}

// Samples decodes the frame back into one Sample per row, label included.
func (f *Frame) Samples() []Sample {
	out := make([]Sample, f.Len())
	for i, row := range f.X {
		s := make(Sample, len(row)+1)
		for j, col := range f.Schema.Features {
			s[col.Name] = decodeCell(col, row[j])
		}
		if f.Task == Classification {
			s[f.Schema.Label.Name] = f.ClassName(int(f.Y[i]))
		} else {
			s[f.Schema.Label.Name] = strconv.FormatFloat(f.Y[i], 'g', -1, 64)
		}
		out[i] = s
	}
	return out
}

func decodeCell(col Column, x float64) string {
	if col.Kind == Categorical {
		if k := int(x); k >= 0 && k < len(col.Levels) {
			return col.Levels[k]
		}
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// EncodeValue encodes a single raw value of feature f.
func (f *Frame) EncodeValue(feature int, v string) (float64, error) {
	if feature < 0 || feature >= len(f.Schema.Features) {
		return 0, scierrors.NewDimensionError("dataset.EncodeValue", len(f.Schema.Features), feature+1, 1)
	}
	return encodeCell("dataset.EncodeValue", f.Schema.Features[feature], strings.TrimSpace(v), -1)
}

func inferColumn(name string, values []string, decls Declarations) (Column, error) {
	if d, ok := decls[name]; ok {
		return Column{Name: name, Kind: d.Kind, Levels: d.Levels}, nil
	}

	levels := distinct(values)
	numeric := allNumeric(levels)
	switch {
	case len(levels) == 2:
		if numeric {
			scierrors.Warn(scierrors.NewDataConversionWarning("numeric", "categorical",
				fmt.Sprintf("column '%s' has exactly two distinct values", name)))
		}
		return Column{Name: name, Kind: Categorical, Levels: sortLevels(levels)}, nil
	case numeric:
		return Column{Name: name, Kind: Numeric}, nil
	case len(levels) == 1:
		return Column{Name: name, Kind: Categorical, Levels: levels}, nil
	default:
		return Column{}, scierrors.NewValidationError(name,
			"non-numeric feature must have at most two distinct values", len(levels))
	}
}

func encodeCell(op string, col Column, v string, row int) (float64, error) {
	if col.Kind == Categorical {
		if code, ok := col.Code(v); ok {
			return float64(code), nil
		}
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			for k, l := range col.Levels {
				if lv, err := strconv.ParseFloat(l, 64); err == nil && lv == x {
					return float64(k), nil
				}
			}
		}
		return 0, scierrors.NewValidationError(col.Name,
			fmt.Sprintf("unknown level, expected one of %v", col.Levels), v)
	}

	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, scierrors.NewValidationError(col.Name, "value is not a number", v)
	}
	if err := scierrors.CheckScalar(op, x, row); err != nil {
		return 0, err
	}
	return x, nil
}

func encodeLabel(name string, values []string, task Task) (Column, []float64, error) {
	const op = "dataset.Infer"

	y := make([]float64, len(values))
	if task == Regression {
		for i, v := range values {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Column{}, nil, scierrors.NewValidationError(name, "regression label is not a number", v)
			}
			if err := scierrors.CheckScalar(op, x, i); err != nil {
				return Column{}, nil, err
			}
			y[i] = x
		}
		return Column{Name: name, Kind: Numeric}, y, nil
	}

	levels := distinct(values)
	if len(levels) > 2 {
		return Column{}, nil, scierrors.NewValueError(op,
			fmt.Sprintf("classification label '%s' has %d distinct values, expected at most 2", name, len(levels)))
	}
	col := Column{Name: name, Kind: Categorical, Levels: sortLevels(levels)}
	for i, v := range values {
		code, _ := col.Code(v)
		y[i] = float64(code)
	}
	return col, y, nil
}

// sortLevels orders levels numerically when they are all numbers and
// lexically otherwise.
func sortLevels(levels []string) []string {
	out := append([]string(nil), levels...)
	if !allNumeric(out) {
		sort.Strings(out)
		return out
	}
	sort.Slice(out, func(a, b int) bool {
		x, _ := strconv.ParseFloat(out[a], 64)
		y, _ := strconv.ParseFloat(out[b], 64)
		return x < y
	})
	return out
}

func allNumeric(values []string) bool {
	for _, v := range values {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func isMissing(v string) bool {
	return v == "" || v == "?" || strings.EqualFold(v, "nan")
}

func containsFloat(s []float64, v float64) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
