package handlers

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"associates/internal/engine/export"
	"associates/internal/engine/paapi"
	"associates/internal/engine/products"
	"associates/internal/pkg/errors"
	"associates/internal/pkg/parser"
	"associates/internal/pkg/validator"
	"associates/internal/platform/audit"
	"associates/internal/platform/metrics"
)

const (
	variantImageLimit  = 4
	connectionKeywords = "test"
)

type ProductHandler struct {
	metrics *metrics.Metrics
	audit   *audit.Logger
	clock   clockwork.Clock
}

func NewProductHandler(m *metrics.Metrics, auditLog *audit.Logger, clock clockwork.Clock) *ProductHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ProductHandler{metrics: m, audit: auditLog, clock: clock}
}

type SearchResponse struct {
	Keywords    string            `json:"keywords"`
	Marketplace string            `json:"marketplace"`
	Count       int               `json:"count"`
	Items       []products.Record `json:"items"`
	Errors      []paapi.ItemError `json:"errors,omitempty"`
	Raw         map[string]any    `json:"raw,omitempty"`
}

// Connection runs a one-item search to confirm the session's credentials.
func (h *ProductHandler) Connection(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	_, err := sess.Client.SearchItems(r.Context(), connectionKeywords, 1, paapi.DefaultSearchIndex)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "connected",
		"marketplace": sess.Client.Marketplace(),
	})
}

// Search backs the niche product finder. debug=true adds the raw response.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	keywords, ok := requireKeywords(w, r, "keywords")
	if !ok {
		return
	}
	count, err := queryInt(r, "count", 5, 1, paapi.MaxItemCount)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}
	index := r.URL.Query().Get("index")
	if index == "" {
		index = paapi.DefaultSearchIndex
	}

	sess := currentSession(r)
	resp, err := sess.Client.SearchItems(r.Context(), keywords, count, index)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}

	items := products.NormalizeAll(resp.Items())
	out := SearchResponse{
		Keywords:    keywords,
		Marketplace: sess.Client.Marketplace().Name,
		Count:       len(items),
		Items:       items,
		Errors:      resp.Errors(),
	}
	if queryBool(r, "debug") {
		out.Raw = resp.Raw
	}
	writeJSON(w, http.StatusOK, out)
}

// Trending returns today's top results for keywords, as JSON or as the
// downloadable tracking CSV.
func (h *ProductHandler) Trending(w http.ResponseWriter, r *http.Request) {
	keywords, ok := requireKeywords(w, r, "keywords")
	if !ok {
		return
	}
	count, err := queryInt(r, "count", 5, 5, paapi.MaxItemCount)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "format must be json or csv", nil)
		return
	}

	sess := currentSession(r)
	resp, err := sess.Client.SearchItems(r.Context(), keywords, count, paapi.DefaultSearchIndex)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}
	records := products.NormalizeAll(resp.Items())

	if format == "csv" {
		filename := export.FileName("trending", keywords, h.clock.Now())
		if h.metrics != nil {
			h.metrics.RecordExport()
		}
		h.audit.Log(r, sess.ID, audit.ActionExport, map[string]interface{}{"file": filename})
		writeCSV(w, filename, func(w http.ResponseWriter) error {
			return export.WriteTrending(w, records)
		})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Keywords:    keywords,
		Marketplace: sess.Client.Marketplace().Name,
		Count:       len(records),
		Items:       records,
		Errors:      resp.Errors(),
	})
}

type ItemDetail struct {
	Product       products.Record `json:"product"`
	VariantImages []string        `json:"variant_images"`
}

// Items looks up a comma separated ASIN list.
func (h *ProductHandler) Items(w http.ResponseWriter, r *http.Request) {
	ids := parser.ParseItemIDs(r.URL.Query().Get("asins"))
	if len(ids) == 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "asins is required", nil)
		return
	}
	if len(ids) > paapi.MaxItemIDs {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, paapi.ErrTooManyItemIDs.Error(), nil)
		return
	}
	if err := validator.ValidateASINs(ids); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	sess := currentSession(r)
	resp, err := sess.Client.GetItems(r.Context(), ids)
	if upstreamFailed(w, h.metrics, paapi.OperationGetItems, err) {
		return
	}

	raw := resp.Items()
	details := make([]ItemDetail, 0, len(raw))
	for _, item := range raw {
		details = append(details, ItemDetail{
			Product:       products.Normalize(item),
			VariantImages: products.VariantImages(item, variantImageLimit),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requested": ids,
		"items":     details,
		"errors":    resp.Errors(),
	})
}

type RankedProduct struct {
	Rank    int             `json:"rank"`
	Product products.Record `json:"product"`
}

// Bestsellers ranks search results for a category keyword in the order
// the marketplace returned them.
func (h *ProductHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	category, ok := requireKeywords(w, r, "category")
	if !ok {
		return
	}
	count, err := queryInt(r, "count", paapi.MaxItemCount, 5, paapi.MaxItemCount)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	sess := currentSession(r)
	resp, err := sess.Client.SearchItems(r.Context(), category, count, paapi.DefaultSearchIndex)
	if upstreamFailed(w, h.metrics, paapi.OperationSearchItems, err) {
		return
	}

	records := products.NormalizeAll(resp.Items())
	ranked := make([]RankedProduct, 0, len(records))
	for i, rec := range records {
		ranked = append(ranked, RankedProduct{Rank: i + 1, Product: rec})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"items":    ranked,
	})
}
