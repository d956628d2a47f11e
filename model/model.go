/*
Package model loads decision tree models from their JSON definitions and
makes predictions with them.
*/
package model

import (
	"context"
	"encoding/json"
	"io"
	"sort"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
	treejson "github.com/pbanos/grove/tree/json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// Importance is the importance of a field in the predictions of a model
type Importance struct {
	FieldID    string  `json:"field"`
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

/*
Model couples a decision tree with the view of the fields it uses. A
Model is never modified once loaded, so it can be used to predict
concurrently.
*/
type Model struct {
	ID          string
	Name        string
	Description string
	Locale      string
	view        *field.View
	tree        *tree.Tree
	importance  []Importance
	// numeric fields the tree splits on that must be present in inputs,
	// empty when the model supports missing numerics
	requiredNumerics []string
}

type status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type resource struct {
	Resource        string      `json:"resource"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Locale          string      `json:"locale"`
	Status          status      `json:"status"`
	ObjectiveField  string      `json:"objective_field"`
	ObjectiveFields []string    `json:"objective_fields"`
	Model           *definition `json:"model"`
}

type definition struct {
	Root            json.RawMessage `json:"root"`
	Fields          json.RawMessage `json:"fields"`
	ModelFields     json.RawMessage `json:"model_fields"`
	ObjectiveField  string          `json:"objective_field"`
	ObjectiveFields []string        `json:"objective_fields"`
	Importance      [][]interface{} `json:"importance"`
	Distribution    struct {
		Training *treejson.Summary `json:"training"`
	} `json:"distribution"`
	MissingTokens   []string `json:"missing_tokens"`
	MissingNumerics *bool    `json:"missing_numerics"`
}

/*
Decode takes the JSON definition of a model and returns the Model. It
returns ErrNotReady if the definition's status code is not finished and
an ErrMalformed error if the definition lacks any of its required parts
(the tree, the fields, the objective field) or they cannot be decoded.
*/
func Decode(data []byte) (*Model, error) {
	r := &resource{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}
	if r.Status.Code != FinishedCode {
		return nil, errors.Wrapf(ErrNotReady, "%s has status code %d", r.Resource, r.Status.Code)
	}
	d := r.Model
	if d == nil || len(d.Root) == 0 {
		return nil, errors.Wrapf(ErrMalformed, "%s has no tree", r.Resource)
	}
	fields, err := decodeFields(d)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", r.Resource, err)
	}
	objectiveID := firstNonEmpty(d.ObjectiveField, d.ObjectiveFields, r.ObjectiveField, r.ObjectiveFields)
	if _, ok := fields[objectiveID]; !ok {
		return nil, errors.Wrapf(ErrMalformed, "%s: unknown objective field %q", r.Resource, objectiveID)
	}
	view := field.NewView(fields, objectiveID, d.MissingTokens)
	t, err := treejson.Decode(d.Root, view, d.Distribution.Training)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", r.Resource, err)
	}
	m := &Model{
		ID:          r.Resource,
		Name:        r.Name,
		Description: r.Description,
		Locale:      r.Locale,
		view:        view,
		tree:        t,
		importance:  decodeImportance(d.Importance, view),
	}
	if d.MissingNumerics != nil && !*d.MissingNumerics {
		m.requiredNumerics = numericSplitFields(t)
	}
	log.Debug().Str("model", m.ID).Int("nodes", t.Len()).Int("fields", len(fields)).Msg("model loaded")
	return m, nil
}

// Read decodes the model definition read from r like Decode does
func Read(ctx context.Context, r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(data)
}

// decodeFields returns the model fields of the definition enriched with
// the name and summary of the corresponding full field descriptors
func decodeFields(d *definition) (map[string]*field.Field, error) {
	if len(d.Fields) == 0 {
		return nil, errors.New("no fields")
	}
	fields, err := field.DecodeMap(d.Fields)
	if err != nil {
		return nil, err
	}
	if len(d.ModelFields) == 0 {
		return fields, nil
	}
	modelFields, err := field.DecodeMap(d.ModelFields)
	if err != nil {
		return nil, err
	}
	for id, mf := range modelFields {
		f, ok := fields[id]
		if !ok {
			return nil, errors.Errorf("model field %s missing from fields", id)
		}
		mf.Summarize(f)
	}
	for _, id := range append([]string{d.ObjectiveField}, d.ObjectiveFields...) {
		if _, ok := modelFields[id]; !ok && fields[id] != nil {
			modelFields[id] = fields[id]
		}
	}
	return modelFields, nil
}

func firstNonEmpty(id string, ids []string, rid string, rids []string) string {
	for _, candidate := range append(append([]string{id}, ids...), append([]string{rid}, rids...)...) {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func decodeImportance(entries [][]interface{}, view *field.View) []Importance {
	result := make([]Importance, 0, len(entries))
	for _, e := range entries {
		if len(e) != 2 {
			continue
		}
		id, ok := e[0].(string)
		if !ok {
			continue
		}
		if _, ok = view.Field(id); !ok {
			continue
		}
		imp, err := cast.ToFloat64E(e[1])
		if err != nil {
			continue
		}
		result = append(result, Importance{FieldID: id, Name: view.Name(id), Importance: imp})
	}
	return result
}

func numericSplitFields(t *tree.Tree) []string {
	seen := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		if p := t.Node(i).Predicate; !p.IsTrue() {
			if f, ok := t.View().Field(p.FieldID); ok && f.Optype == field.Numeric {
				seen[p.FieldID] = true
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Tree returns the decision tree of the model
func (m *Model) Tree() *tree.Tree {
	return m.tree
}

// View returns the view of the model's fields
func (m *Model) View() *field.View {
	return m.view
}

// ObjectiveID returns the id of the field the model predicts
func (m *Model) ObjectiveID() string {
	return m.view.ObjectiveID()
}

// Regression returns whether the model predicts a numeric objective
func (m *Model) Regression() bool {
	return m.tree.Regression()
}

// Importance returns the importance of the fields in the model
func (m *Model) Importance() []Importance {
	return m.importance
}
