package tree

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// Fit grows the tree depth-first from a root holding every frame row.
// A tree can be fitted once; a second call returns ErrAlreadyFitted.
func (t *Tree) Fit() error {
	if t.fitted {
		return scierrors.WithStack(scierrors.ErrAlreadyFitted)
	}

	start := time.Now()
	t.logger.Info("Fitting tree",
		log.OperationKey, log.OperationFit,
		log.TaskKey, t.frame.Task.String(),
		log.SamplesKey, t.frame.Len(),
		log.FeaturesKey, t.frame.NumFeatures(),
		log.MaxDepthKey, t.config.MaxDepth,
		log.MinSamplesSplitKey, t.config.MinSamplesSplit,
	)

	t.Nodes = t.Nodes[:0]
	t.importances = make([]float64, t.frame.NumFeatures())
	root := t.newNode(t.frame.All(), 0, -1)
	t.grow(root)
	t.normalizeImportances()
	t.fitted = true

	t.logger.Info("Tree fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, t.frame.Len(),
		log.TreeNodesKey, t.NNodes(),
		log.TreeLeavesKey, t.NLeaves(),
		log.TreeDepthKey, t.Depth(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (t *Tree) canSplit(n *Node) bool {
	return n.Depth < t.config.MaxDepth && n.Samples >= t.config.MinSamplesSplit
}

func (t *Tree) newNode(rows dataset.View, depth, parent int) int {
	labels := rows.Labels()
	id := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		ID:       id,
		Parent:   parent,
		Left:     -1,
		Right:    -1,
		Depth:    depth,
		Samples:  rows.Len(),
		Rows:     rows,
		Split:    noSplit(),
		Impurity: t.criterion.Impurity(labels),
		Leaf:     t.criterion.Leaf(labels),
	})
	return id
}

// grow turns node id into an internal node and recurses into its children,
// or leaves it as a leaf. Nodes are re-read by index after every append.
func (t *Tree) grow(id int) {
	n := &t.Nodes[id]
	if t.criterion.StopWhenPure() && n.Impurity == 0 {
		return
	}
	if !t.canSplit(n) {
		return
	}

	split := BestSplit(n.Rows, t.criterion)
	if !split.Valid() {
		return
	}
	left, right := n.Rows.Partition(split.GoLeft)
	if left.Len() == 0 || right.Len() == 0 {
		return
	}

	depth := n.Depth
	n.Split = split
	l := t.newNode(left, depth+1, id)
	r := t.newNode(right, depth+1, id)
	t.Nodes[id].Left = l
	t.Nodes[id].Right = r

	t.addImportance(id, l, r)

	if t.logger.Enabled(context.Background(), log.LevelDebug) {
		t.logger.Debug("Split selected",
			log.NodeIDKey, id,
			log.TreeDepthKey, depth,
			log.SplitFeatureKey, split.Name,
			log.SplitKindKey, split.Kind.String(),
			log.SplitThresholdKey, split.Value,
			log.SplitScoreKey, split.Score,
			log.SplitLeftKey, left.Len(),
			log.SplitRightKey, right.Len(),
		)
	}

	t.grow(l)
	t.grow(r)
}

func (t *Tree) addImportance(parent, left, right int) {
	p, l, r := &t.Nodes[parent], &t.Nodes[left], &t.Nodes[right]
	dec := t.criterion.Total(p.Impurity, p.Samples) -
		t.criterion.Total(l.Impurity, l.Samples) -
		t.criterion.Total(r.Impurity, r.Samples)
	if dec > 0 {
		t.importances[p.Split.Feature] += dec
	}
}

func (t *Tree) normalizeImportances() {
	sum := floats.Sum(t.importances)
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, t.importances)
}
