package audit

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ActionSessionOpened   = "session.opened"
	ActionSessionClosed   = "session.closed"
	ActionSessionRejected = "session.rejected"
	ActionExport          = "export.downloaded"
)

type Entry struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"session_id"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata"`
	IPAddress string                 `json:"ip_address"`
	UserAgent string                 `json:"user_agent"`
	CreatedAt int64                  `json:"created_at"`
}

// Logger writes dashboard audit entries as structured log lines. Entries
// never carry credentials; callers pass only ids and display values.
type Logger struct {
	logger zerolog.Logger
}

func NewLogger() *Logger {
	return &Logger{logger: log.Logger.With().Str("component", "audit").Logger()}
}

// WithLogger is used when entries should go somewhere other than the
// global logger.
func WithLogger(l zerolog.Logger) *Logger {
	return &Logger{logger: l}
}

func (l *Logger) Log(r *http.Request, sessionID, action string, metadata map[string]interface{}) Entry {
	entry := Entry{
		ID:        "audit_" + uuid.New().String(),
		SessionID: sessionID,
		Action:    action,
		Metadata:  metadata,
		IPAddress: "unknown",
		UserAgent: "unknown",
		CreatedAt: time.Now().Unix(),
	}
	if r != nil {
		entry.IPAddress = r.RemoteAddr
		entry.UserAgent = r.UserAgent()
	}

	l.logger.Info().
		Str("audit_id", entry.ID).
		Str("session_id", entry.SessionID).
		Str("action", entry.Action).
		Fields(entry.Metadata).
		Str("ip_address", entry.IPAddress).
		Str("user_agent", entry.UserAgent).
		Int64("created_at", entry.CreatedAt).
		Msg("audit")

	return entry
}
