package service

import (
	"slices"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

// EncoderSchema describes the output columns of an encoder artifact.
type EncoderSchema interface {
	Width() int
	FeatureNames() []string
}

// ModelSchema describes the input columns a model artifact was trained on.
type ModelSchema interface {
	NumFeature() int
	FeatureNames() []string
}

// VerifyArtifacts checks that the encoder output matches the model input.
// The widths must agree; when the model stores feature names they must equal
// the encoder's column names in order.
func VerifyArtifacts(enc EncoderSchema, m ModelSchema) error {
	if enc.Width() != m.NumFeature() {
		return domainerrors.ArtifactLoadFailuref("encoder produces %d columns but model expects %d", enc.Width(), m.NumFeature())
	}

	names := m.FeatureNames()
	if len(names) == 0 {
		return nil
	}
	if !slices.Equal(names, enc.FeatureNames()) {
		return domainerrors.ArtifactLoadFailuref("model feature names do not match encoder columns")
	}
	return nil
}
