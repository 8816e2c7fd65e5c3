package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loyerparis/loyer-server/internal/errors"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := errors.UnknownCategoryf("unknown neighborhood %q", "Nowhereville")

	assert.True(t, errors.Is(err, errors.ErrUnknownCategory))
	assert.False(t, errors.Is(err, errors.ErrMissingParameter))
	assert.Equal(t, `unknown neighborhood "Nowhereville"`, err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	inner := errors.InvalidQuantity("area must be positive")
	wrapped := fmt.Errorf("estimate: %w", inner)

	assert.True(t, errors.Is(wrapped, errors.ErrInvalidQuantity))

	var domainErr *errors.Error
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, errors.CodeInvalidQuantity, domainErr.Code)
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("open preprocessor.json: no such file")
	err := errors.ArtifactLoadFailuref("load encoder %s", "preprocessor.json").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no such file")
	assert.True(t, errors.Is(err, errors.ErrArtifactLoadFailure))
}

func TestError_WithDetailsKeepsCode(t *testing.T) {
	details := map[string]string{"area": "is required"}
	err := errors.ErrMissingParameter.WithDetails(details)

	assert.Equal(t, errors.CodeMissingParameter, err.Code)
	assert.Equal(t, details, err.Details)
	assert.Nil(t, errors.ErrMissingParameter.Details, "sentinel must not be mutated")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeMissingParameter, http.StatusBadRequest},
		{errors.CodeValidation, http.StatusBadRequest},
		{errors.CodeUnknownCategory, http.StatusUnprocessableEntity},
		{errors.CodeInvalidQuantity, http.StatusUnprocessableEntity},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeRateLimited, http.StatusTooManyRequests},
		{errors.CodeArtifactLoadFailure, http.StatusServiceUnavailable},
		{errors.CodeSchemaMismatch, http.StatusInternalServerError},
		{errors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}
