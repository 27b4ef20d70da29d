package http

import (
	"net/http"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/httpx"
)

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Checks  struct {
		Database string `json:"database"`
	} `json:"checks"`
}

// HealthHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Returns service health including database connectivity, uptime and version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse	"service not ready"
//	@Router			/api/health [get].
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp HealthResponse
		resp.Status = "ok"
		resp.Version = version
		resp.Checks.Database = "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			resp.Checks.Database = "error: " + err.Error()
			resp.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		resp.Uptime = time.Since(startTime).String()
		httpx.WriteJSON(w, statusCode, resp)
	}
}

// RootHandler godoc
//
//	@Summary		Service banner
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/ [get].
func RootHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"service": "dashboard-api",
			"version": version,
			"docs":    "/swagger/index.html",
		})
	}
}
