package viz

import (
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/tree"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// ImportancePlot returns a bar chart of feature importances, one bar per
// feature in column order.
func ImportancePlot(names []string, importances []float64) (*plot.Plot, error) {
	if len(names) != len(importances) {
		return nil, scierrors.NewDimensionError("viz.ImportancePlot", len(names), len(importances), 0)
	}
	if len(importances) == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, "viz.ImportancePlot")
	}

	p := plot.New()
	p.Title.Text = "Feature importances"
	p.Y.Label.Text = "Normalized impurity decrease"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values(importances), vg.Points(20))
	if err != nil {
		return nil, scierrors.Wrap(err, "viz.ImportancePlot")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

func treeImportancePlot(t *tree.Tree) (*plot.Plot, error) {
	if t == nil || !t.Fitted() {
		return nil, scierrors.NewNotFittedError("DecisionTree", "ImportancePlot")
	}
	return ImportancePlot(t.Frame().Schema.Names(), t.FeatureImportances())
}

// WriteImportances renders the importance chart of a fitted tree to w.
// format is an image format understood by gonum/plot: png, svg, pdf, eps,
// jpg or tif.
func WriteImportances(w io.Writer, t *tree.Tree, format string) error {
	p, err := treeImportancePlot(t)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return scierrors.Wrap(err, "viz.WriteImportances")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return scierrors.Wrap(err, "viz.WriteImportances")
	}
	return nil
}

// SaveImportances saves the importance chart; the format follows the file
// extension.
func SaveImportances(path string, t *tree.Tree) error {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		return scierrors.NewValidationError("path", "must have an image extension", path)
	}
	p, err := treeImportancePlot(t)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return scierrors.Wrap(err, "viz.SaveImportances")
	}
	return nil
}
