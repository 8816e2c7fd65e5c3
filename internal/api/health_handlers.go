package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Component statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"model":   s.checkModel(),
		"encoder": s.checkEncoder(),
		"cache":   s.checkCache(),
	}

	overall := StatusHealthy
	for _, c := range components {
		switch c.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall == StatusHealthy {
				overall = StatusDegraded
			}
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkModel reports whether a model is loaded and its shape.
func (s *Server) checkModel() ComponentHealth {
	m := s.artifacts.Model
	if m == nil {
		return ComponentHealth{Status: StatusUnhealthy, Message: "model not loaded"}
	}
	return ComponentHealth{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%s, %d trees, %d features", m.Objective(), m.NumTrees(), m.NumFeature()),
	}
}

// checkEncoder reports whether an encoder is loaded and agrees with the model.
func (s *Server) checkEncoder() ComponentHealth {
	enc := s.artifacts.Encoder
	if enc == nil {
		return ComponentHealth{Status: StatusUnhealthy, Message: "encoder not loaded"}
	}
	if m := s.artifacts.Model; m != nil && m.NumFeature() != enc.Width() {
		return ComponentHealth{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("encoder width %d does not match model input %d", enc.Width(), m.NumFeature()),
		}
	}
	return ComponentHealth{Status: StatusHealthy, Message: fmt.Sprintf("%d columns", enc.Width())}
}

// checkCache verifies the prediction cache is readable.
func (s *Server) checkCache() ComponentHealth {
	c := s.artifacts.Cache
	if c == nil {
		return ComponentHealth{Status: StatusHealthy, Message: "disabled"}
	}

	start := time.Now()
	n, err := c.Len()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  StatusDegraded,
			Latency: latency.String(),
			Message: "cache read failed",
		}
	}

	return ComponentHealth{
		Status:  StatusHealthy,
		Latency: latency.String(),
		Message: fmt.Sprintf("%d/%d entries, ttl %s", n, c.MaxEntries(), c.TTL()),
	}
}
