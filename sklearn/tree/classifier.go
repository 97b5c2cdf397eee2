package tree

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/dataset"
	"github.com/YuminosukeSato/scitree/metrics"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	cart "github.com/YuminosukeSato/scitree/tree"
)

// DecisionTreeClassifier is a binary decision tree classifier.
// Compatible with scikit-learn's DecisionTreeClassifier for two classes.
type DecisionTreeClassifier struct {
	params
	state *model.StateManager // State management (composition)

	// Model parameters
	tree_     *cart.Tree
	classes_  []float64 // Sorted class labels
	nClasses_ int       // Number of classes seen in y (1 or 2)
}

var (
	_ model.Classifier   = (*DecisionTreeClassifier)(nil)
	_ model.Configurable = (*DecisionTreeClassifier)(nil)
)

// NewDecisionTreeClassifier creates a classifier using the Gini criterion.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	return &DecisionTreeClassifier{
		params: newParams("gini", opts),
		state:  model.NewStateManager(),
	}
}

// Fit builds the tree from X (n_samples × n_features) and y (n_samples × 1).
// y must hold at most two distinct values.
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) (err error) {
	defer scierrors.Recover(&err, "DecisionTreeClassifier.Fit")

	f, err := dataset.FromMatrix(X, y, dt.featureNames, dataset.Classification)
	if err != nil {
		return err
	}
	t, err := dt.grow(f, "DecisionTreeClassifier")
	if err != nil {
		return err
	}

	levels := f.Schema.Label.Levels
	classes := make([]float64, len(levels))
	for i, l := range levels {
		if classes[i], err = strconv.ParseFloat(l, 64); err != nil {
			return scierrors.Wrap(err, "DecisionTreeClassifier.Fit")
		}
	}

	dt.tree_ = t
	dt.classes_ = classes
	dt.nClasses_ = len(classes)
	dt.state.SetDimensions(f.NumFeatures(), f.Len())
	dt.state.SetFitted()
	return nil
}

// Predict returns the predicted class label of every row as an n × 1 matrix.
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scierrors.Recover(&err, "DecisionTreeClassifier.Predict")
	if err := dt.state.RequireFitted("DecisionTreeClassifier", "Predict"); err != nil {
		return nil, err
	}
	leaves, err := predictLeaves(dt.tree_, dt.state, "DecisionTreeClassifier.Predict", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(leaves), 1, nil)
	for i, leaf := range leaves {
		out.Set(i, 0, dt.classes_[leaf.Class])
	}
	return out, nil
}

// PredictProba returns the class frequencies of the leaf each row falls in,
// one column per class in Classes order.
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scierrors.Recover(&err, "DecisionTreeClassifier.PredictProba")
	if err := dt.state.RequireFitted("DecisionTreeClassifier", "PredictProba"); err != nil {
		return nil, err
	}
	leaves, err := predictLeaves(dt.tree_, dt.state, "DecisionTreeClassifier.PredictProba", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(leaves), dt.nClasses_, nil)
	for i, leaf := range leaves {
		total := float64(leaf.Counts[0] + leaf.Counts[1])
		for k := 0; k < dt.nClasses_; k++ {
			out.Set(i, k, float64(leaf.Counts[k])/total)
		}
	}
	return out, nil
}

// Score returns the mean accuracy on the given data.
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	yTrue, err := column(y)
	if err != nil {
		return 0, err
	}
	yPred, err := column(pred)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(yTrue, yPred)
}

// Classes returns the sorted class labels seen during Fit.
func (dt *DecisionTreeClassifier) Classes() []float64 {
	return append([]float64(nil), dt.classes_...)
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return dt.getParams()
}

// SetParams updates the hyperparameters. They take effect on the next Fit.
func (dt *DecisionTreeClassifier) SetParams(params map[string]interface{}) error {
	return dt.setParams(params)
}

// GetDepth returns the depth of the fitted tree.
func (dt *DecisionTreeClassifier) GetDepth() int { return depthOf(dt.tree_) }

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeClassifier) GetNLeaves() int { return leavesOf(dt.tree_) }

// GetFeatureImportances returns the normalized impurity decrease per feature.
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	return importancesOf(dt.tree_)
}

// Tree returns the underlying fitted tree, nil before Fit.
func (dt *DecisionTreeClassifier) Tree() *cart.Tree { return dt.tree_ }
