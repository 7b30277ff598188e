package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds the store probe.
const healthCheckTimeout = 5 * time.Second

const msgDatabaseUnavailable = "Database connection failed"

// healthResponse is the body of GET /api/health. It is not enveloped.
type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Database  string  `json:"database"`
	Uptime    float64 `json:"uptime,omitempty"`
	Version   string  `json:"version,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// handleHealth reports whether the store answers a trivial query.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.db.HealthCheck(ctx); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: now,
			Database:  "disconnected",
			Error:     msgDatabaseUnavailable,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: now,
		Database:  "connected",
		Uptime:    time.Since(s.started).Seconds(),
		Version:   s.version,
	})
}
