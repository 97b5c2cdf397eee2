// Package tree builds binary decision trees by recursive partitioning.
//
// A Tree is constructed from a dataset.Frame and a Config, grown once with
// Fit and then queried with Predict. Nodes live in a single arena slice and
// are addressed by their index; the root is node 0. Classification uses the
// Gini criterion on two classes, regression the sum of squared residuals.
//
//	f, _ := dataset.ReadCSV(r, "play", dataset.Classification)
//	t, _ := tree.New(f, tree.Config{MaxDepth: 3, MinSamplesSplit: 2})
//	if err := t.Fit(); err != nil { ... }
//	p, _ := t.Predict(dataset.Sample{"outlook": "sunny", "temp": "21"})
package tree

import (
	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// Config holds the stopping rules of a tree.
type Config struct {
	// MaxDepth is the depth below which nodes may split. 0 yields a single leaf.
	MaxDepth int
	// MinSamplesSplit is the minimum number of rows a node needs to split.
	MinSamplesSplit int
}

// DefaultConfig returns MaxDepth 10 and MinSamplesSplit 2.
func DefaultConfig() Config {
	return Config{MaxDepth: 10, MinSamplesSplit: 2}
}

// Validate checks MaxDepth >= 0 and MinSamplesSplit >= 1.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return scierrors.NewValidationError("max_depth", "must be >= 0", c.MaxDepth)
	}
	if c.MinSamplesSplit < 1 {
		return scierrors.NewValidationError("min_samples_split", "must be >= 1", c.MinSamplesSplit)
	}
	return nil
}

// Node is one entry of the tree arena. Left, Right and Parent are arena
// indices, -1 when absent. Leaf is computed for every node at creation,
// internal nodes included.
type Node struct {
	ID       int
	Parent   int
	Left     int
	Right    int
	Depth    int
	Samples  int
	Rows     dataset.View
	Split    Split
	Impurity float64
	Leaf     Leaf
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.Left < 0 && n.Right < 0 }

// Tree is a binary decision tree over one frame.
type Tree struct {
	Nodes []Node

	frame       *dataset.Frame
	criterion   Criterion
	config      Config
	logger      log.Logger
	fitted      bool
	importances []float64
}

// Option configures a Tree.
type Option func(*Tree)

// WithCriterion overrides the criterion chosen from the frame task.
func WithCriterion(c Criterion) Option {
	return func(t *Tree) {
		t.criterion = c
	}
}

// WithLogger sets the logger used by Fit.
func WithLogger(l log.Logger) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// New validates the configuration and returns an unfitted tree.
func New(f *dataset.Frame, cfg Config, opts ...Option) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f == nil || f.Len() == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, "tree.New")
	}

	t := &Tree{
		frame:  f,
		config: cfg,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.criterion == nil {
		t.criterion = NewCriterion(f.Task)
	}
	if t.logger == nil {
		t.logger = log.GetLoggerWithName("tree.builder")
	}

	if _, isGini := t.criterion.(Gini); isGini && f.Task != dataset.Classification {
		return nil, scierrors.NewValueError("tree.New", "gini criterion requires a classification frame")
	}
	if _, isSE := t.criterion.(SquaredError); isSE && f.Task != dataset.Regression {
		return nil, scierrors.NewValueError("tree.New", "squared_error criterion requires a regression frame")
	}
	return t, nil
}

// Frame returns the training frame.
func (t *Tree) Frame() *dataset.Frame { return t.frame }

// Criterion returns the criterion the tree is grown with.
func (t *Tree) Criterion() Criterion { return t.criterion }

// Config returns the stopping rules.
func (t *Tree) Config() Config { return t.config }

// Fitted reports whether Fit has completed.
func (t *Tree) Fitted() bool { return t.fitted }

// Root returns the root node, nil before Fit.
func (t *Tree) Root() *Node {
	if len(t.Nodes) == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Node returns the node with the given id.
func (t *Tree) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(t.Nodes) {
		return nil, false
	}
	return &t.Nodes[id], true
}

// NNodes returns the number of nodes.
func (t *Tree) NNodes() int { return len(t.Nodes) }

// NLeaves returns the number of leaves.
func (t *Tree) NLeaves() int {
	n := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			n++
		}
	}
	return n
}

// Depth returns the depth of the deepest node, 0 for a single leaf.
func (t *Tree) Depth() int {
	d := 0
	for i := range t.Nodes {
		if t.Nodes[i].Depth > d {
			d = t.Nodes[i].Depth
		}
	}
	return d
}

// FeatureImportances returns the total impurity decrease per feature,
// normalized to sum to 1. All values are 0 when the tree has no split.
func (t *Tree) FeatureImportances() []float64 {
	out := make([]float64, t.frame.NumFeatures())
	copy(out, t.importances)
	return out
}
