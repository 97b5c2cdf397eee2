package tree

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GiniImpurity returns 2·p·(1−p) where p is the fraction of labels equal to
// positive. An empty partition is maximally impure and yields 1.
func GiniImpurity(labels []float64, positive float64) float64 {
	if len(labels) == 0 {
		return 1
	}
	n := 0
	for _, y := range labels {
		if y == positive {
			n++
		}
	}
	p := float64(n) / float64(len(labels))
	return 2 * p * (1 - p)
}

// WeightedSplitGini returns the size-weighted mean Gini impurity of a
// two-way split, or +Inf when either side is empty.
func WeightedSplitGini(left, right []float64, positive float64) float64 {
	if len(left) == 0 || len(right) == 0 {
		return math.Inf(1)
	}
	nl, nr := float64(len(left)), float64(len(right))
	return (nl*GiniImpurity(left, positive) + nr*GiniImpurity(right, positive)) / (nl + nr)
}

// SSR returns the sum of squared residuals of labels around their mean.
// Empty and single-row partitions have no residual.
func SSR(labels []float64) float64 {
	if len(labels) < 2 {
		return 0
	}
	// 同一値のみの場合は丸め誤差を出さずに0を返す
	if floats.Min(labels) == floats.Max(labels) {
		return 0
	}
	mean := stat.Mean(labels, nil)
	var ssr float64
	for _, y := range labels {
		d := y - mean
		ssr += d * d
	}
	return ssr
}

// SplitSSR returns SSR(left) + SSR(right).
func SplitSSR(left, right []float64) float64 {
	return SSR(left) + SSR(right)
}
