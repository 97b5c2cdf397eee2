package tree

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/scitree/dataset"
)

func mustFrame(t testing.TB, header []string, records [][]string, label string, task dataset.Task) *dataset.Frame {
	t.Helper()
	f, err := dataset.Infer(header, records, label, task)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	return f
}

func TestBestSplitNumericMidpoint(t *testing.T) {
	f := mustFrame(t, []string{"x", "y"},
		[][]string{{"4", "1"}, {"1", "0"}, {"3", "1"}, {"2", "0"}}, "y", dataset.Regression)

	s := BestSplit(f.All(), SquaredError{})
	if !s.Valid() {
		t.Fatal("expected a valid split")
	}
	if s.Kind != dataset.Numeric || s.Threshold != 2.5 || s.Score != 0 {
		t.Errorf("unexpected split %+v", s)
	}
	if s.Value != "2.5" {
		t.Errorf("Value = %q", s.Value)
	}
	if !s.GoLeft([]float64{2}) || s.GoLeft([]float64{2.5}) {
		t.Error("values below the threshold go left, the threshold itself goes right")
	}
}

func TestBestSplitCategorical(t *testing.T) {
	f := mustFrame(t, []string{"f", "label"},
		[][]string{{"B", "y"}, {"A", "x"}, {"A", "x"}, {"B", "y"}}, "label", dataset.Classification)

	s := BestSplit(f.All(), Gini{})
	if s.Kind != dataset.Categorical || s.Feature != 0 {
		t.Fatalf("unexpected split %+v", s)
	}
	if s.Value != "A" || s.Threshold != 0 || s.Score != 0 {
		t.Errorf("first level A should go left with a pure score, got %+v", s)
	}
	if !s.GoLeft([]float64{0}) || s.GoLeft([]float64{1}) {
		t.Error("level code 0 routes left")
	}
}

func TestBestSplitNoCandidate(t *testing.T) {
	f := mustFrame(t, []string{"f", "n", "label"},
		[][]string{{"A", "1", "x"}, {"B", "1", "y"}, {"A", "1", "y"}}, "label", dataset.Classification)

	// only rows with level A: the categorical feature has one level and the
	// numeric feature one value
	v := dataset.NewView(f, []int{0, 2})
	s := BestSplit(v, Gini{})
	if s.Valid() {
		t.Errorf("expected no valid split, got %+v", s)
	}
	if !math.IsInf(s.Score, 1) {
		t.Errorf("score should be +Inf, got %v", s.Score)
	}
}

func TestBestSplitTies(t *testing.T) {
	f := mustFrame(t, []string{"a", "b", "y"},
		[][]string{{"1", "1", "5"}, {"2", "2", "5"}, {"3", "3", "5"}}, "y", dataset.Regression)

	s := BestSplit(f.All(), SquaredError{})
	if s.Feature != 0 {
		t.Errorf("ties should keep the first feature, got %d", s.Feature)
	}
	if s.Threshold != 1.5 {
		t.Errorf("ties should keep the first midpoint, got %v", s.Threshold)
	}
}

func TestMidpoint(t *testing.T) {
	if got := midpoint(1, 2); got != 1.5 {
		t.Errorf("midpoint(1, 2) = %v", got)
	}
	lo := 1.0
	hi := math.Nextafter(lo, 2)
	got := midpoint(lo, hi)
	if !(got > lo && got <= hi) {
		t.Errorf("midpoint of adjacent floats = %v, want in (%v, %v]", got, lo, hi)
	}
	if got := midpoint(-math.MaxFloat64, math.MaxFloat64); got != 0 {
		t.Errorf("midpoint(-Max, Max) = %v, want 0", got)
	}
	if got := midpoint(math.MaxFloat64/2, math.MaxFloat64); math.IsInf(got, 0) || got <= math.MaxFloat64/2 {
		t.Errorf("midpoint near Max = %v", got)
	}
}
