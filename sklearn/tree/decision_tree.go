// Package tree provides scikit-learn compatible decision tree estimators
// over gonum matrices. Both estimators build a binary tree with the core
// tree package: DecisionTreeClassifier on two classes with the Gini
// criterion, DecisionTreeRegressor with squared error.
package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/core/parallel"
	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	cart "github.com/YuminosukeSato/scitree/tree"
)

// predictThreshold is the batch size above which Predict fans out.
const predictThreshold = 256

// params holds the hyperparameters shared by both estimators.
type params struct {
	criterion       string   // "gini" or "squared_error"
	maxDepth        int      // Maximum depth of the tree
	minSamplesSplit int      // Minimum samples required to split a node
	featureNames    []string // Column names used in split labels, nil for x0..xn
	logger          log.Logger
}

// Option is a functional option shared by DecisionTreeClassifier and
// DecisionTreeRegressor.
type Option func(*params)

// WithCriterion sets the split criterion.
func WithCriterion(criterion string) Option {
	return func(p *params) {
		p.criterion = criterion
	}
}

// WithMaxDepth sets the maximum depth of the tree.
func WithMaxDepth(depth int) Option {
	return func(p *params) {
		p.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum number of samples required to split.
func WithMinSamplesSplit(n int) Option {
	return func(p *params) {
		p.minSamplesSplit = n
	}
}

// WithFeatureNames names the columns of X.
func WithFeatureNames(names ...string) Option {
	return func(p *params) {
		p.featureNames = names
	}
}

// WithLogger sets the logger passed to the tree builder.
func WithLogger(l log.Logger) Option {
	return func(p *params) {
		p.logger = l
	}
}

func newParams(criterion string, opts []Option) params {
	cfg := cart.DefaultConfig()
	p := params{
		criterion:       criterion,
		maxDepth:        cfg.MaxDepth,
		minSamplesSplit: cfg.MinSamplesSplit,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p *params) getParams() map[string]interface{} {
	return map[string]interface{}{
		"criterion":         p.criterion,
		"max_depth":         p.maxDepth,
		"min_samples_split": p.minSamplesSplit,
		"feature_names":     p.featureNames,
	}
}

func (p *params) setParams(in map[string]interface{}) error {
	for key, value := range in {
		switch key {
		case "criterion":
			v, ok := value.(string)
			if !ok {
				return scierrors.NewValidationError(key, "must be a string", value)
			}
			p.criterion = v
		case "max_depth":
			v, ok := value.(int)
			if !ok {
				return scierrors.NewValidationError(key, "must be an int", value)
			}
			p.maxDepth = v
		case "min_samples_split":
			v, ok := value.(int)
			if !ok {
				return scierrors.NewValidationError(key, "must be an int", value)
			}
			p.minSamplesSplit = v
		case "feature_names":
			v, ok := value.([]string)
			if !ok {
				return scierrors.NewValidationError(key, "must be a []string", value)
			}
			p.featureNames = v
		default:
			return scierrors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// grow builds and fits a core tree on f.
func (p *params) grow(f *dataset.Frame, modelName string) (*cart.Tree, error) {
	c, err := cart.CriterionByName(p.criterion)
	if err != nil {
		return nil, err
	}
	logger := p.logger
	if logger == nil {
		logger = log.GetLoggerWithName("tree.builder")
	}
	logger = logger.With(log.ModelNameKey, modelName)

	t, err := cart.New(f, cart.Config{MaxDepth: p.maxDepth, MinSamplesSplit: p.minSamplesSplit},
		cart.WithCriterion(c), cart.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := t.Fit(); err != nil {
		return nil, err
	}
	return t, nil
}

// predictLeaves routes every row of X to a leaf. Rows are processed in
// parallel chunks for large batches since the fitted tree is read-only.
func predictLeaves(t *cart.Tree, state *model.StateManager, op string, X mat.Matrix) ([]cart.Leaf, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, op)
	}
	if err := state.RequireFeatures(op, cols); err != nil {
		return nil, err
	}

	leaves := make([]cart.Leaf, rows)
	err := parallel.ParallelizeErr(rows, predictThreshold, func(start, end int) error {
		x := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(x, i, X)
			if err := scierrors.CheckValues(op, x); err != nil {
				return err
			}
			leaf, err := t.PredictEncoded(x)
			if err != nil {
				return err
			}
			leaves[i] = leaf
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func column(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if c != 1 {
		return nil, scierrors.NewDimensionError("column", 1, c, 1)
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

func depthOf(t *cart.Tree) int {
	if t == nil {
		return 0
	}
	return t.Depth()
}

func leavesOf(t *cart.Tree) int {
	if t == nil {
		return 0
	}
	return t.NLeaves()
}

func importancesOf(t *cart.Tree) []float64 {
	if t == nil {
		return nil
	}
	return t.FeatureImportances()
}

