package field

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// TokenMode selects how the terms of a text field are matched
type TokenMode string

const (
	// TokensOnly matches terms as tokens within the text
	TokensOnly TokenMode = "tokens_only"
	// FullTermsOnly matches terms only against the whole text
	FullTermsOnly TokenMode = "full_terms_only"
	// AllTerms matches multi-word terms against the whole text and
	// any other term as a token
	AllTerms TokenMode = "all"
)

// TermAnalysis holds the options used to analyze text fields
type TermAnalysis struct {
	CaseSensitive bool
	TokenMode     TokenMode
	Language      string
}

// ItemAnalysis holds the options used to split items fields
type ItemAnalysis struct {
	Separator       string
	SeparatorRegexp string
}

/*
Field is the immutable descriptor of a model field: its id, display
name, optype and the optype-specific summary and analysis options.
*/
type Field struct {
	ID     string
	Name   string
	Optype Optype
	// ColumnNumber is -1 when the descriptor does not declare one
	ColumnNumber int
	// Prefix and Suffix are stripped from numeric string inputs
	Prefix string
	Suffix string
	// Categories lists the categories of a categorical field in
	// summary order
	Categories []string
	// TermForms maps each term of a text field to its alternative forms
	TermForms map[string][]string
	TagCloud  []string
	Items     []string
	// Median, Minimum and Maximum are set for numeric fields with a summary
	Median       *float64
	Minimum      *float64
	Maximum      *float64
	TermAnalysis TermAnalysis
	ItemAnalysis ItemAnalysis
}

type jsonField struct {
	Name         string            `json:"name"`
	Optype       string            `json:"optype"`
	ColumnNumber *int              `json:"column_number"`
	Prefix       string            `json:"prefix"`
	Suffix       string            `json:"suffix"`
	Summary      json.RawMessage   `json:"summary"`
	TermAnalysis *jsonTermAnalysis `json:"term_analysis"`
	ItemAnalysis *jsonItemAnalysis `json:"item_analysis"`
}

type jsonTermAnalysis struct {
	CaseSensitive bool   `json:"case_sensitive"`
	TokenMode     string `json:"token_mode"`
	Language      string `json:"language"`
}

type jsonItemAnalysis struct {
	Separator       *string `json:"separator"`
	SeparatorRegexp string  `json:"separator_regexp"`
}

type jsonSummary struct {
	Categories [][]interface{}     `json:"categories"`
	TermForms  map[string][]string `json:"term_forms"`
	TagCloud   [][]interface{}     `json:"tag_cloud"`
	Items      [][]interface{}     `json:"items"`
	Median     *float64            `json:"median"`
	Minimum    *float64            `json:"minimum"`
	Maximum    *float64            `json:"maximum"`
}

/*
Decode takes a field id and the JSON descriptor of the field and returns
the corresponding Field or an error if the descriptor cannot be decoded
or declares an unknown optype.
*/
func Decode(id string, data []byte) (*Field, error) {
	jf := &jsonField{}
	if err := json.Unmarshal(data, jf); err != nil {
		return nil, errors.Wrapf(err, "decoding field %s", id)
	}
	optype, err := ParseOptype(jf.Optype)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding field %s", id)
	}
	f := &Field{
		ID:           id,
		Name:         jf.Name,
		Optype:       optype,
		ColumnNumber: -1,
		Prefix:       jf.Prefix,
		Suffix:       jf.Suffix,
		TermAnalysis: TermAnalysis{TokenMode: TokensOnly},
		ItemAnalysis: ItemAnalysis{Separator: " "},
	}
	if f.Name == "" {
		f.Name = id
	}
	if jf.ColumnNumber != nil {
		f.ColumnNumber = *jf.ColumnNumber
	}
	if jf.TermAnalysis != nil {
		f.TermAnalysis.CaseSensitive = jf.TermAnalysis.CaseSensitive
		f.TermAnalysis.Language = jf.TermAnalysis.Language
		if jf.TermAnalysis.TokenMode != "" {
			f.TermAnalysis.TokenMode = TokenMode(jf.TermAnalysis.TokenMode)
		}
	}
	if jf.ItemAnalysis != nil {
		if jf.ItemAnalysis.Separator != nil {
			f.ItemAnalysis.Separator = *jf.ItemAnalysis.Separator
		}
		f.ItemAnalysis.SeparatorRegexp = jf.ItemAnalysis.SeparatorRegexp
	}
	if err = f.decodeSummary(jf.Summary); err != nil {
		return nil, errors.Wrapf(err, "decoding summary of field %s", id)
	}
	return f, nil
}

// DecodeMap decodes a field id to descriptor JSON object
func DecodeMap(data []byte) (map[string]*Field, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding fields")
	}
	fields := make(map[string]*Field, len(raw))
	for id, rf := range raw {
		f, err := Decode(id, rf)
		if err != nil {
			return nil, err
		}
		fields[id] = f
	}
	return fields, nil
}

func (f *Field) decodeSummary(data json.RawMessage) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	js := &jsonSummary{}
	if err := json.Unmarshal(data, js); err != nil {
		return err
	}
	f.Categories = firstStrings(js.Categories)
	f.TagCloud = firstStrings(js.TagCloud)
	f.Items = firstStrings(js.Items)
	f.TermForms = js.TermForms
	f.Median = js.Median
	f.Minimum = js.Minimum
	f.Maximum = js.Maximum
	return nil
}

// Summarize copies the name and summary information of the given field
// into f, keeping f's id and optype. Model fields are often declared
// without a summary that the full field map provides.
func (f *Field) Summarize(from *Field) {
	if from == nil {
		return
	}
	f.Name = from.Name
	if f.ColumnNumber < 0 {
		f.ColumnNumber = from.ColumnNumber
	}
	if f.Categories == nil {
		f.Categories = from.Categories
	}
	if f.TermForms == nil {
		f.TermForms = from.TermForms
	}
	if f.TagCloud == nil {
		f.TagCloud = from.TagCloud
	}
	if f.Items == nil {
		f.Items = from.Items
	}
	if f.Median == nil {
		f.Median, f.Minimum, f.Maximum = from.Median, from.Minimum, from.Maximum
	}
}

// firstStrings takes summary entries of the form [value, count] and
// returns their values as strings
func firstStrings(entries [][]interface{}) []string {
	if entries == nil {
		return nil
	}
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e) == 0 {
			continue
		}
		if v, err := ValueOf(e[0]); err == nil {
			result = append(result, v.String())
		}
	}
	return result
}
