package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/loyerparis/loyer-server/internal/http/response"
)

// EnvelopeVersion is the version carried by every response envelope.
const EnvelopeVersion = response.EnvelopeVersion

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope. Errors become {"v":1,"success":false,"error":{...}}, anything
// else {"v":1,"success":true,"data":...}.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if env, ok := v.(response.Envelope); ok {
		return env, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = http.StatusOK
	}

	var apiErr *APIError
	if e, ok := v.(error); ok {
		if errors.As(e, &apiErr) {
			return response.Failed(apiErr.Code, apiErr.Message, apiErr.Details), nil
		}
		return response.Failed(statusToCode(code), e.Error(), nil), nil
	}

	if code >= http.StatusBadRequest {
		return response.Failed(statusToCode(code), http.StatusText(code), nil), nil
	}

	return response.Succeeded(v), nil
}
