package cmd

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/dataset"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

type predictOptions struct {
	trainOptions
	input string
}

func newPredictCmd() *cobra.Command {
	o := &predictOptions{}
	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "fit a tree on a CSV file and predict the records of another",
		Long: "predict fits a tree on --data and writes one prediction per record of --input " +
			"as CSV. Input records need only the features the tree tests.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout())
		},
	}
	o.bind(predictCmd)
	predictCmd.Flags().StringVarP(&o.input, "input", "i", "", "CSV file of records to predict")
	_ = predictCmd.MarkFlagRequired("input")
	return predictCmd
}

func (o *predictOptions) run(w io.Writer) error {
	t, err := o.train()
	if err != nil {
		return err
	}
	samples, err := readSamples(o.input)
	if err != nil {
		return err
	}

	out := csv.NewWriter(w)
	if err := out.Write([]string{o.label}); err != nil {
		return scierrors.Wrap(err, "writing predictions")
	}
	for i, s := range samples {
		p, err := t.Predict(s)
		if err != nil {
			return scierrors.Wrapf(err, "record %d", i+1)
		}
		value := p.Class
		if t.Frame().Task == dataset.Regression {
			value = strconv.FormatFloat(p.Value, 'g', -1, 64)
		}
		if err := out.Write([]string{value}); err != nil {
			return scierrors.Wrap(err, "writing predictions")
		}
	}
	out.Flush()
	return scierrors.Wrap(out.Error(), "writing predictions")
}
