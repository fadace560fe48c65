package handlers

import (
	"net/http"
	"time"

	"associates/internal/platform/session"
)

type HealthHandler struct {
	sessions *session.Store
}

func NewHealthHandler(sessions *session.Store) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Status    string `json:"status"`
		Timestamp int64  `json:"timestamp"`
		Sessions  int    `json:"sessions"`
	}{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Sessions:  h.sessions.Len(),
	}

	writeJSON(w, http.StatusOK, response)
}
