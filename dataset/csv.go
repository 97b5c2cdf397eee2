package dataset

import (
	"encoding/csv"
	"io"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// ReadCSV reads a header row followed by records and builds a frame with
// Infer.
func ReadCSV(r io.Reader, label string, task Task, opts ...Option) (*Frame, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return Infer(header, records, label, task, opts...)
}

// ReadSamples reads a header row followed by records and returns one Sample
// per record. Columns the tree does not use are kept.
func ReadSamples(r io.Reader) ([]Sample, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, len(records))
	for i, rec := range records {
		s := make(Sample, len(header))
		for j, name := range header {
			s[name] = rec[j]
		}
		samples[i] = s
	}
	return samples, nil
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, scierrors.Wrap(scierrors.ErrEmptyData, "dataset: csv has no header")
	}
	if err != nil {
		return nil, nil, scierrors.Wrap(err, "dataset: reading csv header")
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, scierrors.Wrap(err, "dataset: reading csv records")
	}
	return header, records, nil
}
