package tree

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Leaf is the prediction carried by a node. Class and Counts are used for
// classification, Value for regression.
type Leaf struct {
	Class  int
	Value  float64
	Counts [2]int
}

// Criterion scores candidate splits and produces leaf predictions. The tree
// builder is written once against this interface; Gini and SquaredError
// provide the classification and regression behaviour.
type Criterion interface {
	// Name is the scikit-learn style criterion name.
	Name() string
	// Impurity of a node holding labels.
	Impurity(labels []float64) float64
	// Score of a two-way split, lower is better. +Inf when a side is empty.
	Score(left, right []float64) float64
	// Total converts a node impurity to an amount summed over its n rows,
	// so that impurity decreases of different nodes can be added up.
	Total(impurity float64, n int) float64
	// Leaf computes the prediction of a node holding labels.
	Leaf(labels []float64) Leaf
	// StopWhenPure reports whether a node with zero impurity is a leaf.
	StopWhenPure() bool
}

// Gini is the classification criterion. Labels are class codes 0 and 1.
type Gini struct {
	// Positive is the class whose fraction p enters 2·p·(1−p).
	Positive float64
}

func (Gini) Name() string { return "gini" }

func (g Gini) Impurity(labels []float64) float64 { return GiniImpurity(labels, g.Positive) }

func (g Gini) Score(left, right []float64) float64 {
	return WeightedSplitGini(left, right, g.Positive)
}

func (Gini) Total(impurity float64, n int) float64 { return impurity * float64(n) }

// Leaf predicts the majority class. Equal counts go to class 0, the first
// class in sorted label order.
func (Gini) Leaf(labels []float64) Leaf {
	var leaf Leaf
	for _, y := range labels {
		if y == 1 {
			leaf.Counts[1]++
		} else {
			leaf.Counts[0]++
		}
	}
	if leaf.Counts[1] > leaf.Counts[0] {
		leaf.Class = 1
	}
	leaf.Value = float64(leaf.Class)
	return leaf
}

func (Gini) StopWhenPure() bool { return true }

// SquaredError is the regression criterion based on SSR.
type SquaredError struct{}

func (SquaredError) Name() string { return "squared_error" }

func (SquaredError) Impurity(labels []float64) float64 { return SSR(labels) }

func (SquaredError) Score(left, right []float64) float64 {
	if len(left) == 0 || len(right) == 0 {
		return math.Inf(1)
	}
	return SplitSSR(left, right)
}

func (SquaredError) Total(impurity float64, _ int) float64 { return impurity }

// Leaf predicts the mean label, 0 for an empty node.
func (SquaredError) Leaf(labels []float64) Leaf {
	if len(labels) == 0 {
		return Leaf{}
	}
	return Leaf{Value: stat.Mean(labels, nil)}
}

func (SquaredError) StopWhenPure() bool { return false }

// NewCriterion returns the default criterion of a task.
func NewCriterion(task dataset.Task) Criterion {
	if task == dataset.Regression {
		return SquaredError{}
	}
	return Gini{Positive: 0}
}

// CriterionByName resolves "gini" or "squared_error".
func CriterionByName(name string) (Criterion, error) {
	switch name {
	case "gini":
		return Gini{Positive: 0}, nil
	case "squared_error":
		return SquaredError{}, nil
	default:
		return nil, scierrors.NewValidationError("criterion", "must be gini or squared_error", name)
	}
}
