package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

var tennisHeader = []string{"outlook", "temp", "windy", "play"}

var tennisRecords = [][]string{
	{"sunny", "30", "true", "no"},
	{"rainy", "20", "false", "yes"},
	{"sunny", "25", "false", "yes"},
	{"rainy", "15", "true", "no"},
}

func TestInferKinds(t *testing.T) {
	f, err := Infer(tennisHeader, tennisRecords, "play", Classification)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}

	wantKinds := []Kind{Categorical, Numeric, Categorical}
	if f.NumFeatures() != len(wantKinds) {
		t.Fatalf("expected %d features, got %d", len(wantKinds), f.NumFeatures())
	}
	for j, k := range wantKinds {
		if f.Schema.Features[j].Kind != k {
			t.Errorf("feature %s: expected kind %v, got %v", f.Schema.Features[j].Name, k, f.Schema.Features[j].Kind)
		}
	}

	if got := f.Schema.Features[0].Levels; got[0] != "rainy" || got[1] != "sunny" {
		t.Errorf("outlook levels should be sorted, got %v", got)
	}
	if got := f.Schema.Label.Levels; len(got) != 2 || got[0] != "no" || got[1] != "yes" {
		t.Errorf("unexpected label levels %v", got)
	}

	wantRow0 := []float64{1, 30, 1}
	for j, v := range wantRow0 {
		if f.X[0][j] != v {
			t.Errorf("X[0][%d] = %v, want %v", j, f.X[0][j], v)
		}
	}
	wantY := []float64{0, 1, 1, 0}
	for i, v := range wantY {
		if f.Y[i] != v {
			t.Errorf("Y[%d] = %v, want %v", i, f.Y[i], v)
		}
	}
	if f.ClassName(1) != "yes" {
		t.Errorf("ClassName(1) = %s", f.ClassName(1))
	}
}

func TestInferNumericBinaryColumn(t *testing.T) {
	defer scierrors.SetWarningHandler(func(error) {})

	var warned bool
	scierrors.SetWarningHandler(func(w error) {
		var dc *scierrors.DataConversionWarning
		if scierrors.As(w, &dc) {
			warned = true
		}
	})

	f, err := Infer([]string{"n", "y"}, [][]string{{"10", "a"}, {"9", "b"}, {"10", "a"}}, "y", Classification)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	col := f.Schema.Features[0]
	if col.Kind != Categorical {
		t.Fatalf("expected categorical, got %v", col.Kind)
	}
	if col.Levels[0] != "9" || col.Levels[1] != "10" {
		t.Errorf("numeric levels should sort numerically, got %v", col.Levels)
	}
	if !warned {
		t.Error("expected a DataConversionWarning")
	}
}

func TestInferRegressionLabel(t *testing.T) {
	f, err := Infer([]string{"x", "y"}, [][]string{{"1", "0.5"}, {"2", "1.5"}, {"3", "2.5"}}, "y", Regression)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if f.Schema.Label.Kind != Numeric {
		t.Errorf("regression label should be numeric")
	}
	if f.Y[2] != 2.5 {
		t.Errorf("Y[2] = %v, want 2.5", f.Y[2])
	}
	if f.Schema.Features[0].Kind != Numeric {
		t.Errorf("x has three distinct numbers and should be numeric")
	}
}

func TestInferErrors(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		records [][]string
		label   string
		task    Task
		check   func(error) bool
	}{
		{
			name:    "label not in header",
			header:  []string{"a", "b"},
			records: [][]string{{"1", "x"}},
			label:   "c",
			check:   isValidation,
		},
		{
			name:    "multi-class label",
			header:  []string{"a", "b"},
			records: [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}},
			label:   "b",
			check: func(err error) bool {
				var ve *scierrors.ValueError
				return scierrors.As(err, &ve)
			},
		},
		{
			name:    "multi-way string feature",
			header:  []string{"a", "b"},
			records: [][]string{{"red", "x"}, {"green", "y"}, {"blue", "x"}},
			label:   "b",
			check:   isValidation,
		},
		{
			name:    "non-numeric regression label",
			header:  []string{"a", "b"},
			records: [][]string{{"1", "x"}, {"2", "1.0"}},
			label:   "b",
			task:    Regression,
			check:   isValidation,
		},
		{
			name:    "missing value",
			header:  []string{"a", "b"},
			records: [][]string{{"1", "x"}, {"?", "y"}, {"3", "x"}},
			label:   "b",
			check:   isValidation,
		},
		{
			name:    "ragged record",
			header:  []string{"a", "b"},
			records: [][]string{{"1", "x"}, {"2"}},
			label:   "b",
			check: func(err error) bool {
				var de *scierrors.DimensionError
				return scierrors.As(err, &de)
			},
		},
		{
			name:   "no records",
			header: []string{"a", "b"},
			label:  "b",
			check: func(err error) bool {
				return scierrors.Is(err, scierrors.ErrEmptyData)
			},
		},
		{
			name:    "label only",
			header:  []string{"b"},
			records: [][]string{{"x"}},
			label:   "b",
			check:   isValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Infer(tt.header, tt.records, tt.label, tt.task)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestInferWithSchema(t *testing.T) {
	decls := Declarations{"outlook": {Kind: Categorical, Levels: []string{"sunny", "rainy"}}}
	f, err := Infer(tennisHeader, tennisRecords, "play", Classification, WithSchema(decls))
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if f.X[0][0] != 0 {
		t.Errorf("declared level order should put sunny first, got code %v", f.X[0][0])
	}

	bad := Declarations{"windy": {Kind: Numeric}}
	if _, err := Infer(tennisHeader, tennisRecords, "play", Classification, WithSchema(bad)); !isValidation(err) {
		t.Errorf("declaring a string column numeric should fail, got %v", err)
	}

	unknown := Declarations{"humidity": {Kind: Numeric}}
	if _, err := Infer(tennisHeader, tennisRecords, "play", Classification, WithSchema(unknown)); !isValidation(err) {
		t.Errorf("declaring an unknown column should fail, got %v", err)
	}
}

func TestFromMatrix(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 0.5,
		2, 0.1,
		3, 0.7,
		4, 0.2,
	})

	t.Run("classification", func(t *testing.T) {
		y := mat.NewDense(4, 1, []float64{5, 2, 5, 2})
		f, err := FromMatrix(X, y, nil, Classification)
		if err != nil {
			t.Fatalf("FromMatrix failed: %v", err)
		}
		if f.Schema.Features[1].Name != "x1" {
			t.Errorf("default names should be x0, x1, got %v", f.Schema.Names())
		}
		if f.Schema.Label.Levels[0] != "2" || f.Schema.Label.Levels[1] != "5" {
			t.Errorf("unexpected classes %v", f.Schema.Label.Levels)
		}
		want := []float64{1, 0, 1, 0}
		for i, v := range want {
			if f.Y[i] != v {
				t.Errorf("Y[%d] = %v, want %v", i, f.Y[i], v)
			}
		}
	})

	t.Run("three classes", func(t *testing.T) {
		y := mat.NewDense(4, 1, []float64{0, 1, 2, 1})
		_, err := FromMatrix(X, y, nil, Classification)
		var ve *scierrors.ValueError
		if !scierrors.As(err, &ve) {
			t.Errorf("expected ValueError, got %v", err)
		}
	})

	t.Run("regression", func(t *testing.T) {
		y := mat.NewDense(4, 1, []float64{0.5, 1.5, 2.5, 3.5})
		f, err := FromMatrix(X, y, []string{"a", "b"}, Regression)
		if err != nil {
			t.Fatalf("FromMatrix failed: %v", err)
		}
		if f.Y[3] != 3.5 || f.Schema.Features[0].Name != "a" {
			t.Errorf("unexpected frame %+v", f.Schema)
		}
	})

	t.Run("NaN feature", func(t *testing.T) {
		Xn := mat.NewDense(2, 1, []float64{1, math.NaN()})
		y := mat.NewDense(2, 1, []float64{0, 1})
		_, err := FromMatrix(Xn, y, nil, Classification)
		var ne *scierrors.NumericalInstabilityError
		if !scierrors.As(err, &ne) {
			t.Fatalf("expected NumericalInstabilityError, got %v", err)
		}
		if ne.Row != 1 {
			t.Errorf("expected row 1, got %d", ne.Row)
		}
	})

	t.Run("row mismatch", func(t *testing.T) {
		y := mat.NewDense(3, 1, []float64{0, 1, 0})
		_, err := FromMatrix(X, y, nil, Classification)
		var de *scierrors.DimensionError
		if !scierrors.As(err, &de) || de.Axis != 0 {
			t.Errorf("expected row DimensionError, got %v", err)
		}
	})
}

func TestEncode(t *testing.T) {
	f, err := Infer(tennisHeader, tennisRecords, "play", Classification)
	if err != nil {
		t.Fatal(err)
	}

	x, err := f.Encode(Sample{"outlook": "sunny", "temp": "22.5", "windy": "false", "play": "ignored"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []float64{1, 22.5, 0}
	for j, v := range want {
		if x[j] != v {
			t.Errorf("x[%d] = %v, want %v", j, x[j], v)
		}
	}

	_, err = f.Encode(Sample{"outlook": "sunny", "windy": "false"})
	var mf *scierrors.MissingFeatureError
	if !scierrors.As(err, &mf) || mf.Feature != "temp" {
		t.Errorf("expected MissingFeatureError for temp, got %v", err)
	}

	_, err = f.Encode(Sample{"outlook": "overcast", "temp": "1", "windy": "false"})
	if !isValidation(err) {
		t.Errorf("expected ValidationError for unknown level, got %v", err)
	}

	_, err = f.Encode(Sample{"outlook": "sunny", "temp": "warm", "windy": "false"})
	if !isValidation(err) {
		t.Errorf("expected ValidationError for non-numeric value, got %v", err)
	}
}

func TestEncodeNumericLevelFallback(t *testing.T) {
	f, err := Infer([]string{"flag", "y"}, [][]string{{"0", "a"}, {"1", "b"}}, "y", Classification)
	if err != nil {
		t.Fatal(err)
	}
	v, err := f.EncodeValue(0, "1.0")
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	if v != 1 {
		t.Errorf("1.0 should match level 1, got code %v", v)
	}
}

func TestFrameSamples(t *testing.T) {
	f, err := Infer(tennisHeader, tennisRecords, "play", Classification)
	if err != nil {
		t.Fatal(err)
	}
	samples := f.Samples()
	if len(samples) != len(tennisRecords) {
		t.Fatalf("got %d samples, want %d", len(samples), len(tennisRecords))
	}
	for i, rec := range tennisRecords {
		for j, name := range tennisHeader {
			if got := samples[i][name]; got != rec[j] {
				t.Errorf("sample %d %s = %q, want %q", i, name, got, rec[j])
			}
		}
		x, err := f.Encode(samples[i])
		if err != nil {
			t.Fatalf("Encode(sample %d): %v", i, err)
		}
		for j := range x {
			if x[j] != f.X[i][j] {
				t.Errorf("sample %d re-encodes to %v, want %v", i, x, f.X[i])
				break
			}
		}
	}

	r, err := Infer([]string{"x", "y"}, [][]string{{"1", "2.5"}, {"2", "3"}, {"3", "4"}}, "y", Regression)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Samples()[0]["y"]; got != "2.5" {
		t.Errorf("regression label = %q, want 2.5", got)
	}
}

func isValidation(err error) bool {
	var ve *scierrors.ValidationError
	return scierrors.As(err, &ve)
}
