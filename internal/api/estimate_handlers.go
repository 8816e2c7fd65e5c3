package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/loyerparis/loyer-server/internal/domain"
	"github.com/loyerparis/loyer-server/internal/service"
)

func (s *Server) registerEstimateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "estimateRent",
		Method:      http.MethodGet,
		Path:        "/api/v1/estimate",
		Summary:     "Estimate rent",
		Description: "Predicts the monthly rent of an apartment. Every query parameter is required.",
		Tags:        []string{"Estimates"},
	}, s.handleEstimate)

	huma.Register(s.api, huma.Operation{
		OperationID: "listChoices",
		Method:      http.MethodGet,
		Path:        "/api/v1/choices",
		Summary:     "List accepted labels",
		Description: "Returns the neighborhoods, construction periods and rental types accepted by the estimate endpoint",
		Tags:        []string{"Estimates"},
	}, s.handleListChoices)
}

// EstimateInput holds the raw query parameters. They are kept as strings so
// that an absent or unparsable value is reported as a missing parameter.
type EstimateInput struct {
	Neighborhood string `query:"neighborhood" doc:"Neighborhood name, e.g. Odeon" example:"Odeon"`
	Period       string `query:"period" doc:"Construction period" example:"1946-1970"`
	MainRooms    string `query:"main_rooms" doc:"Number of main rooms" example:"2"`
	Type         string `query:"type" doc:"Furnished or Unfurnished" example:"Furnished"`
	Area         string `query:"area" doc:"Living area in square meters" example:"30"`
}

func (in *EstimateInput) params() domain.EstimateParams {
	return domain.EstimateParams{
		Neighborhood: in.Neighborhood,
		Period:       in.Period,
		MainRooms:    in.MainRooms,
		Type:         in.Type,
		Area:         in.Area,
	}
}

// EstimateResponse contains one rent estimate in API responses.
type EstimateResponse struct {
	ID         string                 `json:"id" doc:"Estimate ID"`
	Rent       int64                  `json:"rent" doc:"Predicted monthly rent in euros, rounded half to even"`
	Currency   string                 `json:"currency" doc:"ISO 4217 currency code" example:"EUR"`
	Prediction float64                `json:"prediction" doc:"Raw model output, a rent per square meter"`
	Message    string                 `json:"message" doc:"Human-readable summary"`
	Cached     bool                   `json:"cached" doc:"Whether the prediction came from the cache"`
	Request    domain.EstimateRequest `json:"request" doc:"Parsed request"`
	Record     domain.FeatureRecord   `json:"record" doc:"Translated feature record fed to the encoder"`
	CreatedAt  time.Time              `json:"created_at" doc:"Creation time"`
}

// EstimateOutput wraps the estimate response for Huma.
type EstimateOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         EstimateResponse
}

// ChoicesOutput wraps the accepted labels for Huma.
type ChoicesOutput struct {
	Body domain.Choices
}

func (s *Server) handleEstimate(ctx context.Context, input *EstimateInput) (*EstimateOutput, error) {
	req, err := service.ParseEstimateParams(input.params())
	if err != nil {
		return nil, toAPIError(err)
	}

	est, err := s.services.Estimate.Estimate(ctx, req)
	if err != nil {
		s.logFailure(ctx, "Estimate failed", err)
		return nil, toAPIError(err)
	}

	return &EstimateOutput{
		CacheControl: CacheNoStore,
		Body:         toEstimateResponse(est),
	}, nil
}

func (s *Server) handleListChoices(_ context.Context, _ *struct{}) (*ChoicesOutput, error) {
	return &ChoicesOutput{Body: s.services.Estimate.Choices()}, nil
}

func toEstimateResponse(est *domain.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:         est.ID,
		Rent:       est.Rent,
		Currency:   "EUR",
		Prediction: est.Prediction,
		Message:    est.Message,
		Cached:     est.Cached,
		Request:    est.Request,
		Record:     est.Record,
		CreatedAt:  est.CreatedAt,
	}
}
