package handler

import (
	"net/http"

	"omnislide/internal/httputil"
)

// HealthCheck responds to health check requests
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
