package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
	"github.com/loyerparis/loyer-server/internal/metrics"
)

// requestLogger logs each request and records its latency, keyed by the
// matched route pattern so that query strings do not explode label sets.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.RecordAPIRequest(r.Method, route, status, duration)

		level := s.logger.Debug
		if status >= http.StatusInternalServerError {
			level = s.logger.Warn
		}
		level("Request completed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration,
		)
	})
}

// logFailure logs a failed operation. Client errors are expected and logged
// at debug; server-side failures at error.
func (s *Server) logFailure(ctx context.Context, msg string, err error) {
	args := []any{"request_id", middleware.GetReqID(ctx), "error", err}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) && domainErr.HTTPStatus() < http.StatusInternalServerError {
		s.logger.Debug(msg, args...)
		return
	}
	s.logger.Error(msg, args...)
}
