package response

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"rent": 840}, discard())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.EqualValues(t, 1, body["v"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"rent": float64(840)}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestJSON_Raw(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"result": "ok"}, nil)

	assert.JSONEq(t, `{"result":"ok"}`, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter)
		status   int
		wantCode string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", nil) }, http.StatusBadRequest, "VALIDATION"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "nope", nil) }, http.StatusNotFound, "NOT_FOUND"},
		{"too many", func(w http.ResponseWriter) { TooManyRequests(w, "slow down", nil) }, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "boom", nil) }, http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			errBody, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, errBody["code"])
			assert.NotContains(t, body, "data")
		})
	}
}

func TestTooManyRequests_RetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	TooManyRequests(w, "slow down", nil)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
		wantMsg  string
	}{
		{
			name:     "missing parameter",
			err:      domainerrors.MissingParameterWithDetails("missing required parameter: area", map[string]string{"area": "is required"}),
			status:   http.StatusBadRequest,
			wantCode: "MISSING_PARAMETER",
			wantMsg:  "missing required parameter: area",
		},
		{
			name:     "unknown category",
			err:      domainerrors.UnknownCategoryf("unknown neighborhood %q", "Nowhereville"),
			status:   http.StatusUnprocessableEntity,
			wantCode: "UNKNOWN_CATEGORY",
			wantMsg:  `unknown neighborhood "Nowhereville"`,
		},
		{
			name:     "wrapped invalid quantity",
			err:      errors.Join(errors.New("context"), domainerrors.InvalidQuantity("area must be positive")),
			status:   http.StatusUnprocessableEntity,
			wantCode: "INVALID_QUANTITY",
			wantMsg:  "area must be positive",
		},
		{
			name:     "schema mismatch is a server error",
			err:      domainerrors.SchemaMismatchf("record has %d fields", 4),
			status:   http.StatusInternalServerError,
			wantCode: "SCHEMA_MISMATCH",
			wantMsg:  "record has 4 fields",
		},
		{
			name:     "plain error is hidden",
			err:      errors.New("disk on fire"),
			status:   http.StatusInternalServerError,
			wantCode: "INTERNAL",
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, discard())

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			errBody, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, errBody["code"])
			assert.Equal(t, tt.wantMsg, errBody["message"])
		})
	}
}
