package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scitree/dataset"
	"github.com/YuminosukeSato/scitree/metrics"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
	"github.com/YuminosukeSato/scitree/viz"
)

type fitOptions struct {
	trainOptions
	test        string
	dot         string
	importances string
	quiet       bool
	profile     string
}

func newFitCmd() *cobra.Command {
	o := &fitOptions{}
	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit a tree on a CSV file, print it and evaluate it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout())
		},
	}
	o.bind(fitCmd)

	// optional outputs
	fitCmd.Flags().StringVar(&o.test, "test", "", "CSV file to evaluate on, defaults to the training data")
	fitCmd.Flags().StringVar(&o.dot, "dot", "", "write the tree as Graphviz DOT to this file")
	fitCmd.Flags().StringVar(&o.importances, "importances", "", "save a feature importance chart to this image file (.png, .svg, .pdf)")
	fitCmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "do not print the tree structure")
	fitCmd.Flags().StringVar(&o.profile, "profile", "", "write a CPU profile of the run to this directory")
	return fitCmd
}

func (o *fitOptions) run(w io.Writer) error {
	logger := log.GetLoggerWithName("scitree.fit")
	if o.profile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(o.profile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	t, err := o.train()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "nodes: %d leaves: %d depth: %d\n", t.NNodes(), t.NLeaves(), t.Depth())
	if !o.quiet {
		printTree(w, t)
	}

	if o.dot != "" {
		if err := writeFile(o.dot, func(f io.Writer) error { return viz.WriteDOT(f, t) }); err != nil {
			return err
		}
		logger.Info("Wrote DOT graph", "path", o.dot)
	}
	if o.importances != "" {
		if err := viz.SaveImportances(o.importances, t); err != nil {
			return err
		}
		logger.Info("Saved feature importances", "path", o.importances)
	}

	samples := t.Frame().Samples()
	if o.test != "" {
		if samples, err = readSamples(o.test); err != nil {
			return err
		}
	}
	return evaluate(w, t, samples, o.label)
}

// printTree writes one line per node, indented by depth, left subtree first.
func printTree(w io.Writer, t *tree.Tree) {
	var walk func(id int)
	walk = func(id int) {
		n, ok := t.Node(id)
		if !ok {
			return
		}
		label := strings.ReplaceAll(t.NodeLabel(id), "\n", " ")
		fmt.Fprintf(w, "%s[%d] %s (samples=%d)\n", strings.Repeat("  ", n.Depth), id, label, n.Samples)
		if !n.IsLeaf() {
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(0)
}

// evaluate predicts every sample and prints the metrics of the task.
func evaluate(w io.Writer, t *tree.Tree, samples []dataset.Sample, label string) error {
	if len(samples) == 0 {
		return scierrors.Wrap(scierrors.ErrEmptyData, "evaluate")
	}

	f := t.Frame()
	if f.Task == dataset.Classification {
		yTrue := make([]string, len(samples))
		yPred := make([]string, len(samples))
		for i, s := range samples {
			truth, ok := s[label]
			if !ok {
				return scierrors.NewMissingFeatureError("evaluate", label)
			}
			p, err := t.Predict(s)
			if err != nil {
				return scierrors.Wrapf(err, "row %d", i+1)
			}
			yTrue[i], yPred[i] = strings.TrimSpace(truth), p.Class
		}
		positive := f.ClassName(0)
		report, err := metrics.ClassificationReport(yTrue, yPred, positive)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "positive class: %s\n", positive)
		printMetric(w, "accuracy", report.Accuracy)
		printMetric(w, "recall", report.Recall)
		printMetric(w, "specificity", report.Specificity)
		printMetric(w, "precision", report.Precision)
		printMetric(w, "f1_score", report.F1Score)
		printMetric(w, "auc", report.AUC)
		return nil
	}

	yTrue := mat.NewVecDense(len(samples), nil)
	yPred := mat.NewVecDense(len(samples), nil)
	for i, s := range samples {
		truth, ok := s[label]
		if !ok {
			return scierrors.NewMissingFeatureError("evaluate", label)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(truth), 64)
		if err != nil {
			return scierrors.NewValidationError(label, "regression label must be numeric", truth)
		}
		p, err := t.Predict(s)
		if err != nil {
			return scierrors.Wrapf(err, "row %d", i+1)
		}
		yTrue.SetVec(i, v)
		yPred.SetVec(i, p.Value)
	}
	report, err := metrics.RegressionReport(yTrue, yPred)
	if err != nil {
		return err
	}
	printMetric(w, "mse", report.MSE)
	printMetric(w, "mae", report.MAE)
	printMetric(w, "r2", report.R2)
	return nil
}

func printMetric(w io.Writer, name string, v float64) {
	fmt.Fprintf(w, "%-12s %.3f\n", name, v)
}

func writeFile(path string, fn func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return scierrors.Wrapf(err, "creating %s", path)
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
