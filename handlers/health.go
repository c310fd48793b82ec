package handlers

import "net/http"

// HealthCheck is the public liveness probe.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
