package handlers

import (
	"net/http"

	"associates/internal/platform/metrics"
)

type MetricsHandler struct {
	metrics *metrics.Metrics
}

func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

// Export writes the counters as Prometheus text, or JSON with format=json.
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot := h.metrics.Snapshot()

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, snapshot)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	snapshot.WriteText(w)
}
