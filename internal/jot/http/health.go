package http

import (
	"net/http"
	"time"

	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// HealthHandler reports service health, uptime, and version. The database is
// pinged on every probe; an unreachable database degrades the status and the
// response code. It backs both the public probe and the gated variant clients
// use to verify a token.
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
