package ensemble

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/source"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"
)

type definition struct {
	Resource string `json:"resource"`
	Status   struct {
		Code int `json:"code"`
	} `json:"status"`
	Models        []json.RawMessage `json:"models"`
	Distributions []struct {
		Importance [][]interface{} `json:"importance"`
	} `json:"distributions"`
}

/*
Decode takes a context, the JSON definition of an ensemble, a source and
options and returns the Ensemble. The models of the definition can be
model definitions or model ids to retrieve from src, which may be nil
when all of them are embedded.

When the definition has per model distributions, the field importance
of the ensemble is the sum of their importance instead of the one of the
models.
*/
func Decode(ctx context.Context, data []byte, src source.Source, opts ...Option) (*Ensemble, error) {
	d := &definition{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, errors.Wrap(model.ErrMalformed, err.Error())
	}
	if d.Status.Code != model.FinishedCode {
		return nil, errors.Wrapf(model.ErrNotReady, "%s has status code %d", d.Resource, d.Status.Code)
	}
	if len(d.Models) == 0 {
		return nil, errors.Wrapf(ErrNoModels, "%s", d.Resource)
	}
	models, err := loadModels(ctx, d.Models, src)
	if err != nil {
		return nil, errors.Wrapf(err, "loading models of %s", d.Resource)
	}
	e, err := New(models, opts...)
	if err != nil {
		return nil, err
	}
	e.ID = d.Resource
	if len(d.Distributions) > 0 {
		e.importance = sumImportance(distributionImportance(d, models))
	}
	return e, nil
}

// Read decodes the ensemble definition read from r like Decode does
func Read(ctx context.Context, r io.Reader, src source.Source, opts ...Option) (*Ensemble, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, data, src, opts...)
}

// Load retrieves the definition of the ensemble with the given id from
// src and decodes it like Decode does
func Load(ctx context.Context, src source.Source, id string, opts ...Option) (*Ensemble, error) {
	data, err := src.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, data, src, opts...)
}

func loadModels(ctx context.Context, entries []json.RawMessage, src source.Source) ([]*model.Model, error) {
	models := make([]*model.Model, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, bytes.TrimSpace(entry)
		g.Go(func() error {
			data := []byte(entry)
			if len(entry) > 0 && entry[0] == '"' {
				var id string
				if err := json.Unmarshal(entry, &id); err != nil {
					return errors.Wrap(model.ErrMalformed, err.Error())
				}
				if src == nil {
					return errors.Wrapf(ErrNoSource, "model %s", id)
				}
				var err error
				if data, err = src.Get(gctx, id); err != nil {
					return err
				}
			}
			m, err := model.Decode(data)
			if err != nil {
				return errors.Wrapf(err, "model %d", i)
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

func distributionImportance(d *definition, models []*model.Model) [][]model.Importance {
	var entries [][]model.Importance
	for _, dist := range d.Distributions {
		var imps []model.Importance
		for _, e := range dist.Importance {
			if len(e) != 2 {
				continue
			}
			id, ok := e[0].(string)
			if !ok {
				continue
			}
			imp, err := cast.ToFloat64E(e[1])
			if err != nil {
				continue
			}
			imps = append(imps, model.Importance{FieldID: id, Name: fieldName(id, models), Importance: imp})
		}
		entries = append(entries, imps)
	}
	return entries
}

func fieldName(id string, models []*model.Model) string {
	for _, m := range models {
		if _, ok := m.View().Field(id); ok {
			return m.View().Name(id)
		}
	}
	return id
}
