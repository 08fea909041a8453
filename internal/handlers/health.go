package handlers

import "net/http"

// HealthHandlers exposes the liveness probe.
type HealthHandlers struct{}

// NewHealthHandlers constructs a HealthHandlers instance.
func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{}
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
