package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

/*
ReadCSV takes a context and an io.Reader for a CSV stream and returns a
Dataset with the samples parsed from it or an error.

The header or first row of the CSV content is expected to consist of the
names of the fields. Every other row is a sample with the string values
for those fields, left for the model to interpret.
*/
func ReadCSV(ctx context.Context, reader io.Reader) (Dataset, error) {
	samples := []Sample{}
	err := ReadCSVBySample(ctx, reader, func(_ int, s Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return New(samples), nil
}

/*
ReadCSVBySample takes a context, an io.Reader for a CSV stream and a
lambda function on an integer and a Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda
function with the sample and its index as parameters. If the lambda
function returns true, it will continue processing the next sample,
otherwise it will stop. An error is returned if something goes wrong
when reading the stream, the context is done or the lambda fails.
*/
func ReadCSVBySample(ctx context.Context, reader io.Reader, lambda func(int, Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	r.FieldsPerRecord = len(header)
	for l := 2; ; l++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "reading line %d", l)
		}
		sample := make(Sample, len(header))
		for i, name := range header {
			sample[name] = row[i]
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

// ReadCSVFromFilePath opens the file at filepath (os.Stdin when empty)
// and reads it with ReadCSV
func ReadCSVFromFilePath(ctx context.Context, filepath string) (Dataset, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", filepath)
		}
		defer f.Close()
	}
	d, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return d, nil
}
