package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
	"github.com/loyerparis/loyer-server/internal/model"
)

type fakeModel struct {
	width int
	names []string
}

func (m fakeModel) NumFeature() int        { return m.width }
func (m fakeModel) FeatureNames() []string { return m.names }

func TestVerifyArtifacts_Fixtures(t *testing.T) {
	enc := newTestEncoder(t)
	booster, err := model.LoadBooster(modelFixture, model.Options{})
	require.NoError(t, err)

	assert.NoError(t, VerifyArtifacts(enc, booster))
}

func TestVerifyArtifacts_Mismatch(t *testing.T) {
	enc := newTestEncoder(t)

	err := VerifyArtifacts(enc, fakeModel{width: 8})
	require.ErrorIs(t, err, domainerrors.ErrArtifactLoadFailure)
	assert.Contains(t, err.Error(), "expects 8")

	names := enc.FeatureNames()
	names[0], names[1] = names[1], names[0]
	err = VerifyArtifacts(enc, fakeModel{width: enc.Width(), names: names})
	require.ErrorIs(t, err, domainerrors.ErrArtifactLoadFailure)

	assert.NoError(t, VerifyArtifacts(enc, fakeModel{width: enc.Width()}))
}
