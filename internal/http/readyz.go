package http

import (
	"net/http"
	"time"

	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database before declaring the service ready; 503 when degraded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
