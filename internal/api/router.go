package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "associates/internal/api/context"
	"associates/internal/api/handlers"
	"associates/internal/api/middleware"
	"associates/internal/pkg/errors"
)

type Dependencies struct {
	SessionHandler  *handlers.SessionHandler
	ProductHandler  *handlers.ProductHandler
	SocialHandler   *handlers.SocialHandler
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler
	MetricsHandler  *handlers.MetricsHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	authMid := deps.AuthMiddleware
	limit := deps.RateLimiter

	// Sessions
	router.GET("/api/v1/marketplaces", wrap(deps.SessionHandler.Marketplaces))
	router.POST("/api/v1/session", chain(deps.SessionHandler.Create, limit.Handle))
	router.DELETE("/api/v1/session", chain(deps.SessionHandler.Delete, authMid.Handle))

	// Marketplace calls, limited per session
	router.GET("/api/v1/connection",
		chain(deps.ProductHandler.Connection, authMid.Handle, limit.Handle))
	router.GET("/api/v1/search",
		chain(deps.ProductHandler.Search, authMid.Handle, limit.Handle))
	router.GET("/api/v1/trending",
		chain(deps.ProductHandler.Trending, authMid.Handle, limit.Handle))
	router.GET("/api/v1/items",
		chain(deps.ProductHandler.Items, authMid.Handle, limit.Handle))
	router.GET("/api/v1/bestsellers",
		chain(deps.ProductHandler.Bestsellers, authMid.Handle, limit.Handle))
	router.GET("/api/v1/analysis",
		chain(deps.AnalysisHandler.Analyze, authMid.Handle, limit.Handle))
	router.GET("/api/v1/social/posts",
		chain(deps.SocialHandler.Posts, authMid.Handle, limit.Handle))

	router.GET("/api/v1/social/qr",
		chain(deps.SocialHandler.QRCode, authMid.Handle))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found", nil)
	})

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
