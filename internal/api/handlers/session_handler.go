package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	apiContext "associates/internal/api/context"
	"associates/internal/engine/paapi"
	"associates/internal/pkg/errors"
	"associates/internal/platform/audit"
	"associates/internal/platform/auth"
	"associates/internal/platform/clients"
	"associates/internal/platform/config"
	"associates/internal/platform/metrics"
	"associates/internal/platform/session"
)

type SessionHandler struct {
	sessions  *session.Store
	tokenSvc  *auth.TokenService
	paapi     config.PAAPIConfig
	dashboard config.DashboardConfig
	metrics   *metrics.Metrics
	defaults  *clients.Resolver
	audit     *audit.Logger
}

func NewSessionHandler(sessions *session.Store, tokenSvc *auth.TokenService, paapiCfg config.PAAPIConfig, dashboard config.DashboardConfig, m *metrics.Metrics, auditLog *audit.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		tokenSvc:  tokenSvc,
		paapi:     paapiCfg,
		dashboard: dashboard,
		metrics:   m,
		defaults:  clients.NewResolver(paapiCfg),
		audit:     auditLog,
	}
}

type CreateSessionRequest struct {
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
	PartnerTag  string `json:"partner_tag"`
	Marketplace string `json:"marketplace"`
	Password    string `json:"password"`
}

type SessionResponse struct {
	Token       string            `json:"token"`
	SessionID   string            `json:"session_id"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Marketplace paapi.Marketplace `json:"marketplace"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if h.dashboard.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(h.dashboard.PasswordHash), []byte(req.Password)); err != nil {
			h.audit.Log(r, "", audit.ActionSessionRejected, map[string]interface{}{"reason": "password"})
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid dashboard password", nil)
			return
		}
	}

	creds, err := h.resolveCredentials(r.Context(), req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	marketplace := req.Marketplace
	if marketplace == "" {
		marketplace = h.paapi.Marketplace
	} else if !paapi.IsKnownMarketplace(marketplace) {
		log.Warn().Str("requested", marketplace).Str("marketplace", h.paapi.Marketplace).Msg("unknown marketplace, using default")
		marketplace = h.paapi.Marketplace
	}

	sess, err := h.sessions.Create(creds, marketplace)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	mkt := sess.Client.Marketplace()
	token, err := h.tokenSvc.GenerateSessionToken(sess.ID, mkt.Name, sess.ExpiresAt)
	if err != nil {
		h.sessions.Delete(sess.ID)
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to issue token", nil)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSession()
	}
	h.audit.Log(r, sess.ID, audit.ActionSessionOpened, map[string]interface{}{
		"marketplace": mkt.Name,
		"partner_tag": sess.PartnerTag,
	})

	writeJSON(w, http.StatusCreated, SessionResponse{
		Token:       token,
		SessionID:   sess.ID,
		ExpiresAt:   sess.ExpiresAt,
		Marketplace: mkt,
	})
}

// resolveCredentials prefers keys from the request and falls back to the
// server defaults.
func (h *SessionHandler) resolveCredentials(ctx context.Context, req CreateSessionRequest) (paapi.Credentials, error) {
	if req.AccessKey != "" || req.SecretKey != "" {
		partnerTag := req.PartnerTag
		if partnerTag == "" {
			partnerTag = h.paapi.PartnerTag
		}
		creds := paapi.Credentials{AccessKey: req.AccessKey, SecretKey: req.SecretKey, PartnerTag: partnerTag}
		return creds, creds.Validate()
	}

	creds, err := h.defaults.Defaults(ctx, req.PartnerTag)
	if err != nil {
		log.Warn().Err(err).Msg("default credentials unavailable")
	}
	return creds, err
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(apiContext.Claims).(*auth.Claims)
	h.sessions.Delete(claims.SessionID)
	h.audit.Log(r, claims.SessionID, audit.ActionSessionClosed, nil)
	w.WriteHeader(http.StatusNoContent)
}

// Marketplaces lists the supported marketplaces for the login form.
func (h *SessionHandler) Marketplaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default":      paapi.LookupMarketplace(h.paapi.Marketplace).Name,
		"marketplaces": paapi.Marketplaces(),
	})
}
