/*
Package dataset provides collections of samples to evaluate models on,
read from CSV or JSON streams.
*/
package dataset

import "context"

/*
Dataset represents a collection of samples.

Its Samples method returns the samples it contains and its Count method
the number of them.
*/
type Dataset interface {
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
}

type memoryDataset struct {
	samples []Sample
}

// New takes a slice of samples and returns a dataset built with them
func New(samples []Sample) Dataset {
	return &memoryDataset{samples}
}

func (d *memoryDataset) Samples(ctx context.Context) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.samples, nil
}

func (d *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(d.samples), nil
}
