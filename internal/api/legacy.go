package api

import (
	"fmt"
	"net/http"

	"github.com/loyerparis/loyer-server/internal/domain"
	"github.com/loyerparis/loyer-server/internal/http/response"
	"github.com/loyerparis/loyer-server/internal/service"
)

// LegacyResponse is the body of GET /get_prediction, kept for the
// web front end which renders the marked-up sentence as HTML.
type LegacyResponse struct {
	Result string `json:"result"`
}

func (s *Server) registerLegacyRoutes() {
	s.router.Get("/get_prediction", s.handleLegacyPrediction)
}

func (s *Server) handleLegacyPrediction(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req, err := service.ParseEstimateParams(domain.EstimateParams{
		Neighborhood: q.Get("neighborhood"),
		Period:       q.Get("period"),
		MainRooms:    q.Get("main_rooms"),
		Type:         q.Get("type"),
		Area:         q.Get("area"),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	est, err := s.services.Estimate.Estimate(r.Context(), req)
	if err != nil {
		s.logFailure(r.Context(), "Legacy estimate failed", err)
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Cache-Control", CacheNoStore)
	response.JSON(w, http.StatusOK, LegacyResponse{Result: legacyMessage(est)}, s.logger)
}

// legacyMessage renders the estimate with the <mark>/<mark2> highlight tags
// the web front end styles.
func legacyMessage(est *domain.Estimate) string {
	req := est.Request
	return fmt.Sprintf(
		"The predicted rent for an apartment located at <mark>%s</mark>, in a period <mark>%s</mark>, with <mark>%d</mark> main rooms and <mark>%s</mark> is : <mark2>%d €</mark2> 🥳",
		req.Neighborhood, req.Period, req.MainRooms, req.RentalType, est.Rent,
	)
}
