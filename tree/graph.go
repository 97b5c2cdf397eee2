package tree

import (
	"math"
	"strconv"

	"github.com/YuminosukeSato/scitree/dataset"
)

// GraphNode is a node of the exported graph. ID is the arena index.
type GraphNode struct {
	ID    int
	Label string
	Leaf  bool
}

// Edge points from a parent to a child.
type Edge struct {
	From int
	To   int
}

// Graph is a renderer-neutral description of a fitted tree.
type Graph struct {
	Nodes []GraphNode
	Edges []Edge
}

// Graph lists every node with its label and every parent to child edge.
// Left edges precede right edges.
func (t *Tree) Graph() Graph {
	g := Graph{Nodes: make([]GraphNode, 0, len(t.Nodes))}
	for i := range t.Nodes {
		n := &t.Nodes[i]
		g.Nodes = append(g.Nodes, GraphNode{ID: n.ID, Label: t.NodeLabel(n.ID), Leaf: n.IsLeaf()})
		if !n.IsLeaf() {
			g.Edges = append(g.Edges, Edge{From: n.ID, To: n.Left}, Edge{From: n.ID, To: n.Right})
		}
	}
	return g
}

// NodeLabel returns "Predicting: <value>" for a leaf and
// "Splitting on\n<feature>=<value>" for an internal node.
func (t *Tree) NodeLabel(id int) string {
	n, ok := t.Node(id)
	if !ok {
		return ""
	}
	if !n.IsLeaf() {
		return "Splitting on\n" + n.Split.Name + "=" + n.Split.Value
	}
	if t.frame.Task == dataset.Classification {
		return "Predicting: " + t.frame.ClassName(n.Leaf.Class)
	}
	return "Predicting: " + strconv.FormatFloat(round3(n.Leaf.Value), 'f', -1, 64)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
