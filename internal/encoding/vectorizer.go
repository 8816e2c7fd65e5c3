// Package encoding reproduces the input contract of a fitted scikit-learn
// DictVectorizer: categorical fields expand into one-hot columns keyed by
// "field=value", numeric fields pass through as dense columns, and the
// output column order is the fitted feature_names order.
package encoding

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/loyerparis/loyer-server/internal/domain"
	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

// DefaultSeparator is the DictVectorizer default between field and value.
const DefaultSeparator = "="

// Artifact is the JSON export of a fitted DictVectorizer.
//
//	{"feature_names": [...], "vocabulary": {"name": 0, ...}, "separator": "="}
//
// Vocabulary may be omitted, in which case it is derived from FeatureNames.
type Artifact struct {
	FeatureNames []string       `json:"feature_names"`
	Vocabulary   map[string]int `json:"vocabulary,omitempty"`
	Separator    string         `json:"separator,omitempty"`
}

// Vectorizer encodes feature records into dense vectors. It is immutable
// after construction and safe for concurrent use.
type Vectorizer struct {
	names      []string
	vocabulary map[string]int
	separator  string
	schema     map[string]domain.FieldKind
}

// LoadVectorizer reads and validates an encoding artifact from disk.
// Every failure is an ArtifactLoadFailure.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- artifact path comes from configuration
	if err != nil {
		return nil, domainerrors.ArtifactLoadFailuref("read encoder artifact %s", path).WithCause(err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, domainerrors.ArtifactLoadFailuref("decode encoder artifact %s", path).WithCause(err)
	}

	v, err := NewVectorizer(a, domain.RecordSchema())
	if err != nil {
		return nil, domainerrors.ArtifactLoadFailuref("invalid encoder artifact %s", path).WithCause(err)
	}
	return v, nil
}

// NewVectorizer builds a vectorizer from a decoded artifact and checks it
// covers every field of schema.
func NewVectorizer(a Artifact, schema []domain.Field) (*Vectorizer, error) {
	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("artifact has no feature names")
	}

	sep := a.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	vocab := a.Vocabulary
	if len(vocab) == 0 {
		vocab = make(map[string]int, len(a.FeatureNames))
		for i, name := range a.FeatureNames {
			if _, dup := vocab[name]; dup {
				return nil, fmt.Errorf("duplicate feature name %q", name)
			}
			vocab[name] = i
		}
	}

	if len(vocab) != len(a.FeatureNames) {
		return nil, fmt.Errorf("vocabulary has %d entries but %d feature names", len(vocab), len(a.FeatureNames))
	}
	for name, idx := range vocab {
		if idx < 0 || idx >= len(a.FeatureNames) {
			return nil, fmt.Errorf("feature %q has out of range index %d", name, idx)
		}
		if a.FeatureNames[idx] != name {
			return nil, fmt.Errorf("feature %q index %d disagrees with feature_names", name, idx)
		}
	}

	v := &Vectorizer{
		names:      append([]string(nil), a.FeatureNames...),
		vocabulary: vocab,
		separator:  sep,
		schema:     make(map[string]domain.FieldKind, len(schema)),
	}

	for _, f := range schema {
		v.schema[f.Name] = f.Kind
		switch f.Kind {
		case domain.FieldNumeric:
			if _, ok := vocab[f.Name]; !ok {
				return nil, fmt.Errorf("numeric field %q has no column", f.Name)
			}
		case domain.FieldCategorical:
			if len(v.Categories(f.Name)) == 0 {
				return nil, fmt.Errorf("categorical field %q has no one-hot columns", f.Name)
			}
		}
	}

	return v, nil
}

// Width returns the number of output columns.
func (v *Vectorizer) Width() int {
	return len(v.names)
}

// FeatureNames returns the output column names in order.
func (v *Vectorizer) FeatureNames() []string {
	return append([]string(nil), v.names...)
}

// Categories returns the fitted values of a categorical field, in column order.
func (v *Vectorizer) Categories(field string) []string {
	prefix := field + v.separator
	var out []string
	for _, name := range v.names {
		if value, ok := strings.CutPrefix(name, prefix); ok {
			out = append(out, value)
		}
	}
	return out
}

// Encode transforms a feature record into a dense vector.
func (v *Vectorizer) Encode(rec domain.FeatureRecord) ([]float64, error) {
	return v.Transform(rec.Fields())
}

// Transform encodes ordered fields into a dense vector. A categorical value
// unseen at fit time contributes an all-zero block. The field set must match
// the schema the vectorizer was built for, otherwise SchemaMismatch.
func (v *Vectorizer) Transform(fields []domain.Field) ([]float64, error) {
	if len(fields) != len(v.schema) {
		return nil, domainerrors.SchemaMismatchf("record has %d fields, encoder expects %d", len(fields), len(v.schema))
	}

	out := make([]float64, len(v.names))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		kind, ok := v.schema[f.Name]
		if !ok {
			return nil, domainerrors.SchemaMismatchf("unknown field %q", f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, domainerrors.SchemaMismatchf("duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		if kind != f.Kind {
			return nil, domainerrors.SchemaMismatchf("field %q is %s, encoder expects %s", f.Name, f.Kind, kind)
		}

		switch kind {
		case domain.FieldCategorical:
			if idx, ok := v.vocabulary[f.Name+v.separator+f.Text]; ok {
				out[idx] = 1
			}
		case domain.FieldNumeric:
			out[v.vocabulary[f.Name]] = f.Number
		}
	}

	return out, nil
}
