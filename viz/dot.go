// Package viz renders fitted trees. Tree structure is exported as Graphviz
// DOT with gographviz and feature importances are drawn with gonum/plot.
package viz

import (
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/tree"
)

const graphName = "G"

// DOT builds a directed Graphviz graph of a fitted tree. Node names are
// arena ids; labels come from tree.NodeLabel.
func DOT(t *tree.Tree) (*gographviz.Graph, error) {
	if t == nil || !t.Fitted() {
		return nil, scierrors.NewNotFittedError("DecisionTree", "DOT")
	}

	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, scierrors.Wrap(err, "viz.DOT")
	}
	if err := g.SetDir(true); err != nil {
		return nil, scierrors.Wrap(err, "viz.DOT")
	}

	desc := t.Graph()
	for _, n := range desc.Nodes {
		attrs := map[string]string{
			"label":    strconv.Quote(n.Label),
			"shape":    "rectangle",
			"fontsize": "8",
		}
		if n.Leaf {
			attrs["style"] = "rounded"
		}
		if err := g.AddNode(graphName, strconv.Itoa(n.ID), attrs); err != nil {
			return nil, scierrors.Wrapf(err, "viz.DOT: node %d", n.ID)
		}
	}
	for _, e := range desc.Edges {
		if err := g.AddEdge(strconv.Itoa(e.From), strconv.Itoa(e.To), true, nil); err != nil {
			return nil, scierrors.Wrapf(err, "viz.DOT: edge %d->%d", e.From, e.To)
		}
	}
	return g, nil
}

// WriteDOT writes the DOT source of a fitted tree to w.
func WriteDOT(w io.Writer, t *tree.Tree) error {
	g, err := DOT(t)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, g.String()); err != nil {
		return scierrors.Wrap(err, "viz.WriteDOT")
	}
	return nil
}
