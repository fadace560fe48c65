package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
	"associates/internal/engine/social"
	"associates/internal/pkg/errors"
	"associates/internal/platform/metrics"
)

type SocialHandler struct {
	metrics *metrics.Metrics
}

func NewSocialHandler(m *metrics.Metrics) *SocialHandler {
	return &SocialHandler{metrics: m}
}

func (h *SocialHandler) Posts(w http.ResponseWriter, r *http.Request) {
	keywords, ok := requireKeywords(w, r, "keywords")
	if !ok {
		return
	}
	count, err := queryInt(r, "count", 3, 1, social.MaxPosts)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}
	platform := social.NormalizePlatform(r.URL.Query().Get("platform"))

	sess := currentSession(r)
	resp, err := sess.Client.SearchItems(r.Context(), keywords, count, paapi.DefaultSearchIndex)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keywords": keywords,
		"platform": platform,
		"posts":    social.BuildPosts(products.NormalizeAll(resp.Items()), platform),
	})
}

// QRCode renders a PNG for a product link.
func (h *SocialHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("url")
	if link == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "url is required", nil)
		return
	}

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "size must be an integer", nil)
			return
		}
		size = n
	}

	png, err := social.GenerateQRCode(link, size)
	if err != nil {
		if stderrors.Is(err, social.ErrInvalidQRSize) {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to generate QR code", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}
