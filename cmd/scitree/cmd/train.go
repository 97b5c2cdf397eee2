package cmd

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

// trainOptions are the flags shared by fit and predict.
type trainOptions struct {
	data            string
	table           string
	label           string
	task            string
	schema          string
	maxDepth        int
	minSamplesSplit int
}

func (o *trainOptions) bind(c *cobra.Command) {
	cfg := tree.DefaultConfig()
	c.Flags().StringVarP(&o.data, "data", "d", "", "training data: a CSV file with a header row, a SQLite3 (.db) file or a PostgreSQL URL")
	c.Flags().StringVar(&o.table, "table", "", "table to read when --data is a database")
	c.Flags().StringVarP(&o.label, "label", "l", "", "name of the label column")
	c.Flags().StringVarP(&o.task, "task", "t", "classification", "'classification' or 'regression'")
	c.Flags().StringVar(&o.schema, "schema", "", "optional YAML file declaring feature kinds")
	c.Flags().IntVar(&o.maxDepth, "max-depth", cfg.MaxDepth, "depth below which nodes may split")
	c.Flags().IntVar(&o.minSamplesSplit, "min-samples-split", cfg.MinSamplesSplit, "minimum rows a node needs to split")

	_ = c.MarkFlagRequired("data")
	_ = c.MarkFlagRequired("label")
}

// frame reads the training CSV, applying the schema file when given.
func (o *trainOptions) frame() (*dataset.Frame, error) {
	task, err := dataset.ParseTask(o.task)
	if err != nil {
		return nil, err
	}

	var opts []dataset.Option
	if o.schema != "" {
		raw, err := os.ReadFile(o.schema)
		if err != nil {
			return nil, scierrors.Wrapf(err, "reading schema %s", o.schema)
		}
		decls, err := dataset.ReadSchemaYAML(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dataset.WithSchema(decls))
	}

	if driver := o.driver(); driver != "" {
		return o.readTable(driver, task, opts)
	}
	file, err := os.Open(o.data)
	if err != nil {
		return nil, scierrors.Wrapf(err, "opening %s", o.data)
	}
	defer file.Close()
	return dataset.ReadCSV(file, o.label, task, opts...)
}

// driver returns the database/sql driver for --data, "" for CSV.
func (o *trainOptions) driver() string {
	switch {
	case strings.HasPrefix(o.data, "postgresql://"), strings.HasPrefix(o.data, "postgres://"):
		return "postgres"
	case strings.HasSuffix(o.data, ".db"):
		return "sqlite3"
	default:
		return ""
	}
}

func (o *trainOptions) readTable(driver string, task dataset.Task, opts []dataset.Option) (*dataset.Frame, error) {
	if o.table == "" {
		return nil, scierrors.NewValidationError("table", "required when --data is a database", o.data)
	}
	if driver == "sqlite3" {
		if _, err := os.Stat(o.data); err != nil {
			return nil, scierrors.Wrapf(err, "opening %s", o.data)
		}
	}
	db, err := sql.Open(driver, o.data)
	if err != nil {
		return nil, scierrors.Wrapf(err, "opening %s", o.data)
	}
	defer db.Close()
	return dataset.ReadSQL(context.Background(), db, o.table, o.label, task, opts...)
}

// train builds and fits a tree on the training CSV.
func (o *trainOptions) train() (*tree.Tree, error) {
	f, err := o.frame()
	if err != nil {
		return nil, err
	}
	t, err := tree.New(f,
		tree.Config{MaxDepth: o.maxDepth, MinSamplesSplit: o.minSamplesSplit},
		tree.WithLogger(log.GetLoggerWithName("tree.builder")),
	)
	if err != nil {
		return nil, err
	}
	if err := t.Fit(); err != nil {
		return nil, err
	}
	return t, nil
}

func readSamples(path string) ([]dataset.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, scierrors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()
	return dataset.ReadSamples(file)
}
