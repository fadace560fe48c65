package handlers

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"associates/internal/engine/analytics"
	"associates/internal/engine/export"
	"associates/internal/engine/paapi"
	"associates/internal/pkg/errors"
	"associates/internal/platform/audit"
	"associates/internal/platform/metrics"
)

type AnalysisHandler struct {
	metrics *metrics.Metrics
	audit   *audit.Logger
	clock   clockwork.Clock
}

func NewAnalysisHandler(m *metrics.Metrics, auditLog *audit.Logger, clock clockwork.Clock) *AnalysisHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AnalysisHandler{metrics: m, audit: auditLog, clock: clock}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	keywords, ok := requireKeywords(w, r, "keywords")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "format must be json or csv", nil)
		return
	}

	sess := currentSession(r)
	summary, err := analytics.NewService(sess.Client).Analyze(r.Context(), keywords)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}

	if format == "csv" {
		filename := export.FileName("analysis", keywords, h.clock.Now())
		if h.metrics != nil {
			h.metrics.RecordExport()
		}
		h.audit.Log(r, sess.ID, audit.ActionExport, map[string]interface{}{"file": filename})
		writeCSV(w, filename, func(w http.ResponseWriter) error {
			return export.WriteAnalysis(w, summary.Rows)
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
