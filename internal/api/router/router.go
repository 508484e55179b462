// Package router wires the webhook endpoints onto a chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omnirelay/channel-bridge/internal/http/handlers"
	httpmiddleware "github.com/omnirelay/channel-bridge/internal/http/middleware"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	Webhooks       *handlers.Handler
	MetricsHandler http.Handler
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Webhooks.HealthCheck)

	// Meta channels share one webhook path: GET for the subscription
	// handshake, POST for message receipt.
	r.Get("/webhook", cfg.Webhooks.VerifyMetaWebhook)
	r.Post("/webhook", cfg.Webhooks.MetaWebhook)

	// Inline-response channels.
	r.Post("/twilio-webhook", cfg.Webhooks.TwilioWebhook)
	r.Post("/respondio-webhook", cfg.Webhooks.RespondIoWebhook)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
