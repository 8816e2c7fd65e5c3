package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loyerparis/loyer-server/internal/domain"
	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
	"github.com/loyerparis/loyer-server/internal/validation"
)

type limitsRequest struct {
	Name  string `json:"name" validate:"required"`
	Rooms int    `json:"rooms,omitempty" validate:"gte=1,lte=20"`
}

func completeParams() domain.EstimateParams {
	return domain.EstimateParams{
		Neighborhood: "Odeon",
		Period:       "1946-1970",
		MainRooms:    "2",
		Type:         "Furnished",
		Area:         "30",
	}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(completeParams()))
}

func TestValidator_MissingParameters(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		mutate  func(p *domain.EstimateParams)
		wantMsg string
		fields  []string
	}{
		{
			name:    "missing area",
			mutate:  func(p *domain.EstimateParams) { p.Area = "" },
			wantMsg: "missing required parameter: area",
			fields:  []string{"area"},
		},
		{
			name: "missing type and rooms",
			mutate: func(p *domain.EstimateParams) {
				p.Type = ""
				p.MainRooms = ""
			},
			wantMsg: "missing required parameter: main_rooms, type",
			fields:  []string{"main_rooms", "type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := completeParams()
			tt.mutate(&p)

			err := v.Validate(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrMissingParameter)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Equal(t, tt.wantMsg, domainErr.Message)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Len(t, details, len(tt.fields))
			for _, f := range tt.fields {
				assert.Equal(t, "is required", details[f])
			}
		})
	}
}

func TestValidator_OtherRulesAreValidationErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(limitsRequest{Name: "x", Rooms: 40})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be less than or equal to 20", details["rooms"])
}
