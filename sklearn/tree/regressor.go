package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/dataset"
	"github.com/YuminosukeSato/scitree/metrics"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	cart "github.com/YuminosukeSato/scitree/tree"
)

// DecisionTreeRegressor is a regression tree minimizing the sum of squared
// residuals. Leaves predict the mean target of their samples.
type DecisionTreeRegressor struct {
	params
	state *model.StateManager

	tree_ *cart.Tree
}

var (
	_ model.Regressor    = (*DecisionTreeRegressor)(nil)
	_ model.Configurable = (*DecisionTreeRegressor)(nil)
)

// NewDecisionTreeRegressor creates a regressor using the squared_error criterion.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	return &DecisionTreeRegressor{
		params: newParams("squared_error", opts),
		state:  model.NewStateManager(),
	}
}

// Fit builds the tree from X (n_samples × n_features) and y (n_samples × 1).
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) (err error) {
	defer scierrors.Recover(&err, "DecisionTreeRegressor.Fit")

	f, err := dataset.FromMatrix(X, y, dt.featureNames, dataset.Regression)
	if err != nil {
		return err
	}
	t, err := dt.grow(f, "DecisionTreeRegressor")
	if err != nil {
		return err
	}
	dt.tree_ = t
	dt.state.SetDimensions(f.NumFeatures(), f.Len())
	dt.state.SetFitted()
	return nil
}

// Predict returns the leaf mean of every row as an n × 1 matrix.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scierrors.Recover(&err, "DecisionTreeRegressor.Predict")
	if err := dt.state.RequireFitted("DecisionTreeRegressor", "Predict"); err != nil {
		return nil, err
	}
	leaves, err := predictLeaves(dt.tree_, dt.state, "DecisionTreeRegressor.Predict", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(leaves), 1, nil)
	for i, leaf := range leaves {
		out.Set(i, 0, leaf.Value)
	}
	return out, nil
}

// Score returns the coefficient of determination R² of the prediction.
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
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
	return metrics.R2Score(yTrue, yPred)
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeRegressor) GetParams() map[string]interface{} {
	return dt.getParams()
}

// SetParams updates the hyperparameters. They take effect on the next Fit.
func (dt *DecisionTreeRegressor) SetParams(params map[string]interface{}) error {
	return dt.setParams(params)
}

// GetDepth returns the depth of the fitted tree.
func (dt *DecisionTreeRegressor) GetDepth() int { return depthOf(dt.tree_) }

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeRegressor) GetNLeaves() int { return leavesOf(dt.tree_) }

// GetFeatureImportances returns the normalized SSR decrease per feature.
func (dt *DecisionTreeRegressor) GetFeatureImportances() []float64 {
	return importancesOf(dt.tree_)
}

// Tree returns the underlying fitted tree, nil before Fit.
func (dt *DecisionTreeRegressor) Tree() *cart.Tree { return dt.tree_ }
