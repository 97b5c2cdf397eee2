package tree

import (
	"math"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/scitree/dataset"
)

// Split is the rule stored on an internal node. Categorical splits send
// level code 0 left; numeric splits send values below Threshold left.
type Split struct {
	Feature   int
	Name      string
	Kind      dataset.Kind
	Threshold float64
	// Value is the human readable split value: the level routed left, or
	// the formatted threshold.
	Value string
	Score float64
}

func noSplit() Split {
	return Split{Feature: -1, Score: math.Inf(1)}
}

// Valid reports whether the split was found, i.e. has a finite score.
func (s Split) Valid() bool {
	return s.Feature >= 0 && !math.IsInf(s.Score, 1)
}

// GoLeft routes an encoded feature vector.
func (s Split) GoLeft(x []float64) bool {
	return s.goLeftValue(x[s.Feature])
}

func (s Split) goLeftValue(v float64) bool {
	if s.Kind == dataset.Categorical {
		return v == s.Threshold
	}
	return v < s.Threshold
}

// BestSplit scans every feature of the view and returns the split with the
// lowest criterion score. Ties keep the first feature in column order and,
// within a numeric feature, the lowest threshold. The result is not Valid
// when no feature separates the rows.
func BestSplit(v dataset.View, c Criterion) Split {
	best := noSplit()
	schema := v.Frame().Schema
	for f, col := range schema.Features {
		var cand Split
		if col.Kind == dataset.Categorical {
			cand = categoricalSplit(v, f, col, c)
		} else {
			cand = numericSplit(v, f, col, c)
		}
		if cand.Score < best.Score {
			best = cand
		}
	}
	return best
}

func categoricalSplit(v dataset.View, f int, col dataset.Column, c Criterion) Split {
	if v.Distinct(f) < 2 {
		return noSplit()
	}
	var left, right []float64
	for i := 0; i < v.Len(); i++ {
		if v.Value(i, f) == 0 {
			left = append(left, v.Label(i))
		} else {
			right = append(right, v.Label(i))
		}
	}
	value := ""
	if len(col.Levels) > 0 {
		value = col.Levels[0]
	}
	return Split{
		Feature:   f,
		Name:      col.Name,
		Kind:      dataset.Categorical,
		Threshold: 0,
		Value:     value,
		Score:     c.Score(left, right),
	}
}

type valueLabel struct {
	value float64
	label float64
}

func numericSplit(v dataset.View, f int, col dataset.Column, c Criterion) Split {
	n := v.Len()
	pairs := make([]valueLabel, n)
	for i := 0; i < n; i++ {
		pairs[i] = valueLabel{value: v.Value(i, f), label: v.Label(i)}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

	labels := make([]float64, n)
	for i, p := range pairs {
		labels[i] = p.label
	}

	best := noSplit()
	for i := 0; i+1 < n; i++ {
		lo, hi := pairs[i].value, pairs[i+1].value
		if lo == hi {
			continue
		}
		score := c.Score(labels[:i+1], labels[i+1:])
		if score < best.Score {
			t := midpoint(lo, hi)
			best = Split{
				Feature:   f,
				Name:      col.Name,
				Kind:      dataset.Numeric,
				Threshold: t,
				Value:     strconv.FormatFloat(t, 'g', -1, 64),
				Score:     score,
			}
		}
	}
	return best
}

// midpoint returns a threshold t with lo < t <= hi.
func midpoint(lo, hi float64) float64 {
	t := lo/2 + hi/2
	if t <= lo {
		return hi
	}
	return t
}
