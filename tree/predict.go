package tree

import (
	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Prediction is the result of Predict. Class is the predicted class name for
// classification trees and empty for regression trees.
type Prediction struct {
	Class  string
	Value  float64
	Leaf   Leaf
	NodeID int
}

// PredictEncoded routes an encoded feature vector, laid out like the frame
// features, to a leaf.
func (t *Tree) PredictEncoded(x []float64) (Leaf, error) {
	id, err := t.leafID(x)
	if err != nil {
		return Leaf{}, err
	}
	return t.Nodes[id].Leaf, nil
}

// Apply returns the id of the leaf x is routed to.
func (t *Tree) Apply(x []float64) (int, error) {
	return t.leafID(x)
}

func (t *Tree) leafID(x []float64) (int, error) {
	if !t.fitted {
		return -1, scierrors.NewNotFittedError("DecisionTree", "PredictEncoded")
	}
	id := 0
	for {
		n := &t.Nodes[id]
		if n.IsLeaf() {
			return id, nil
		}
		if n.Split.Feature >= len(x) {
			return -1, scierrors.NewDimensionError("tree.PredictEncoded", t.frame.NumFeatures(), len(x), 1)
		}
		if n.Split.GoLeft(x) {
			id = n.Left
		} else {
			id = n.Right
		}
	}
}

// Predict routes a raw sample. Only the features tested along the path are
// read; a missing one is a MissingFeatureError. A level never seen during
// Fit does not equal the split level and goes right.
func (t *Tree) Predict(sample dataset.Sample) (Prediction, error) {
	if !t.fitted {
		return Prediction{}, scierrors.NewNotFittedError("DecisionTree", "Predict")
	}
	id := 0
	for {
		n := &t.Nodes[id]
		if n.IsLeaf() {
			break
		}
		raw, ok := sample[n.Split.Name]
		if !ok {
			return Prediction{}, scierrors.NewMissingFeatureError("tree.Predict", n.Split.Name)
		}
		v, err := t.frame.EncodeValue(n.Split.Feature, raw)
		if err != nil {
			if n.Split.Kind != dataset.Categorical {
				return Prediction{}, err
			}
			// 未知の水準は右へ
			v = -1
		}
		if n.Split.goLeftValue(v) {
			id = n.Left
		} else {
			id = n.Right
		}
	}

	leaf := t.Nodes[id].Leaf
	p := Prediction{Value: leaf.Value, Leaf: leaf, NodeID: id}
	if t.frame.Task == dataset.Classification {
		p.Class = t.frame.ClassName(leaf.Class)
	}
	return p, nil
}
