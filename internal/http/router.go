// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// token verification, and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Token verification gates every command route before any other work
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-slack-actions/internal/config"
	"github.com/tbourn/go-slack-actions/internal/http/handlers"
	"github.com/tbourn/go-slack-actions/internal/http/middleware"
	"github.com/tbourn/go-slack-actions/internal/registry"
	"github.com/tbourn/go-slack-actions/internal/services"
	"github.com/tbourn/go-slack-actions/internal/slackutil"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), security headers,
// health and metrics endpoints, and mounts the three slash-command routes
// behind the shared-token verifier.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with token/PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Security headers
//  8. Token verifier (command routes only)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, reg *registry.Registry, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Slack sends the shared secret in
	// the form body; the query scrubber catches any token that leaks into
	// the URL, and webhook-style headers are masked outright.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-Slack-Signature",
			"X-Slack-Request-Timestamp",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; slash-command payloads are tiny)
	r.Use(limitBody(64 << 10))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    true, // command replies are per-user, never cacheable
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

	// Dependency injection: services ← db/registry/notifier
	actionSvc := &services.ActionService{
		DB:       db,
		Registry: reg,
		Notifier: &slackutil.Notifier{Timeout: cfg.NotifyTimeout},
	}
	statsSvc := &services.StatsService{DB: db, Registry: reg}
	h := handlers.New(actionSvc, statsSvc, reg)

	// Command routes. The verifier runs before any handler work: a bad or
	// missing token gets the plain-text rejection and nothing else happens.
	cmd := r.Group("", middleware.SlackTokenVerifier(cfg.VerificationToken))
	{
		cmd.POST("/list", h.ListCommands)
		cmd.POST("/stats", h.Stats)
		cmd.POST("/action", h.Action)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
