package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	apiContext "associates/internal/api/context"
	"associates/internal/engine/paapi"
	"associates/internal/pkg/errors"
	"associates/internal/pkg/parser"
	"associates/internal/platform/metrics"
	"associates/internal/platform/session"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func currentSession(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(apiContext.Session).(*session.Session)
	return sess
}

// queryInt reads an integer parameter, using def when it is absent.
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// requireKeywords writes a 400 and returns false when the keywords
// parameter is empty.
func requireKeywords(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	keywords := parser.ParseKeywords(r.URL.Query().Get(name))
	if keywords == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, name+" is required", nil)
		return "", false
	}
	return keywords, true
}

// upstreamFailed records a marketplace call and, on failure, writes the
// client's error envelope. It reports whether the handler should stop.
func upstreamFailed(w http.ResponseWriter, m *metrics.Metrics, op paapi.Operation, err error) bool {
	if m != nil {
		m.RecordUpstream(err)
	}
	if err == nil {
		return false
	}

	log.Warn().Err(err).Str("operation", string(op)).Msg("marketplace call failed")
	errors.WriteUpstreamError(w, string(op)+" request failed", paapi.ErrorEnvelope(err))
	return true
}

func writeCSV(w http.ResponseWriter, filename string, render func(w http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := render(w); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("csv export failed")
	}
}
