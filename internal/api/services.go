package api

import "github.com/loyerparis/loyer-server/internal/service"

// Services groups all business logic services used by the API server.
type Services struct {
	Estimate *service.EstimateService
}
