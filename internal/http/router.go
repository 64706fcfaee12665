// Package httpapi wires the HTTP transport (Gin) to the recipe service,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter, gzip
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-recipe-backend/internal/config"
	"github.com/tbourn/go-recipe-backend/internal/http/handlers"
	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
	"github.com/tbourn/go-recipe-backend/internal/remote"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. The store is the single writer-visible source of truth; the remote
// client is only reached on cache misses and live searches.
func RegisterRoutes(r *gin.Engine, store *repo.RecipeStore, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (favourite toggles are tiny) and gzip for
	// the large detail payloads
	r.Use(limitBody(64 << 10))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: handler ← service ← store/remote
	client := remote.NewClient(cfg.Spoonacular.BaseURL, cfg.Spoonacular.APIKey, remote.Options{
		RequestTimeout: cfg.Spoonacular.RequestTimeout,
		ConnectTimeout: cfg.Spoonacular.ConnectTimeout,
	})
	svc := services.NewRecipeService(store, client)
	h := handlers.New(svc, cfg.Spoonacular.CDNBaseURL)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/recipes/search", h.SearchRecipes)
		api.GET("/recipes/favourites", h.ListFavourites)
		api.GET("/recipes/history", h.ListHistory)
		api.GET("/recipes/:id", h.GetRecipeDetail)
		api.PUT("/recipes/:id/favourite", h.SetFavourite)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; reads past the cap error downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
