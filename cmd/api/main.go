package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omnirelay/channel-bridge/internal/api/router"
	"github.com/omnirelay/channel-bridge/internal/bridge"
	"github.com/omnirelay/channel-bridge/internal/channels/messenger"
	"github.com/omnirelay/channel-bridge/internal/channels/whatsapp"
	appconfig "github.com/omnirelay/channel-bridge/internal/config"
	"github.com/omnirelay/channel-bridge/internal/http/handlers"
	"github.com/omnirelay/channel-bridge/internal/observability/metrics"
	"github.com/omnirelay/channel-bridge/internal/voiceflow"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting channel-bridge API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	bridgeMetrics := metrics.NewBridgeMetrics(prometheus.DefaultRegisterer)

	convo := voiceflow.NewClient(cfg.VoiceflowAPIKey, logger,
		voiceflow.WithBaseURL(cfg.VoiceflowBaseURL),
		voiceflow.WithVersionID(cfg.VoiceflowVersionID),
		voiceflow.WithTimeout(cfg.VoiceflowTimeout),
		voiceflow.WithMetrics(bridgeMetrics),
	)

	whatsappAdapter := whatsapp.NewAdapter(cfg.WhatsAppToken, cfg.PhoneNumberID, logger)
	whatsappAdapter.SetGraphAPIBase(cfg.GraphAPIBaseURL)
	messengerAdapter := messenger.NewAdapter(cfg.PageAccessToken, logger)
	messengerAdapter.SetGraphAPIBase(cfg.GraphAPIBaseURL)

	dispatcher := bridge.NewDispatcher(convo, bridgeMetrics, logger)

	webhookHandler := handlers.NewHandler(handlers.Config{
		Dispatcher:      dispatcher,
		WhatsApp:        whatsappAdapter,
		Messenger:       messengerAdapter,
		VerifyToken:     cfg.VerifyToken,
		MetaAppSecret:   cfg.MetaAppSecret,
		RespondIoSecret: cfg.RespondIoSecret,
		Logger:          logger,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		Webhooks:       webhookHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
