package dataset

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

/*
ReadJSON takes a context and an io.Reader with a stream of JSON objects,
either a single array of objects or a sequence of objects (as in JSON
lines), and returns a Dataset with a sample for every object.
*/
func ReadJSON(ctx context.Context, reader io.Reader) (Dataset, error) {
	dec := json.NewDecoder(reader)
	samples := []Sample{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding sample %d", len(samples))
		}
		if len(raw) > 0 && raw[0] == '[' {
			var batch []Sample
			if err = json.Unmarshal(raw, &batch); err != nil {
				return nil, errors.Wrapf(err, "decoding samples from %d", len(samples))
			}
			samples = append(samples, batch...)
			continue
		}
		s := Sample{}
		if err = json.Unmarshal(raw, &s); err != nil {
			return nil, errors.Wrapf(err, "decoding sample %d", len(samples))
		}
		samples = append(samples, s)
	}
	return New(samples), nil
}
