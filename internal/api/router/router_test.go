package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omnirelay/channel-bridge/internal/bridge"
	"github.com/omnirelay/channel-bridge/internal/channels/messenger"
	"github.com/omnirelay/channel-bridge/internal/channels/whatsapp"
	"github.com/omnirelay/channel-bridge/internal/http/handlers"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

type noopConvo struct{}

func (noopConvo) Interact(context.Context, string, string) []string {
	return []string{"ok"}
}

func newTestRouter() http.Handler {
	logger := logging.Default()
	h := handlers.NewHandler(handlers.Config{
		Dispatcher:  bridge.NewDispatcher(noopConvo{}, nil, logger),
		WhatsApp:    whatsapp.NewAdapter("t", "p", logger),
		Messenger:   messenger.NewAdapter("t", logger),
		VerifyToken: "tok",
		Logger:      logger,
	})
	return New(&Config{
		Logger:         logger,
		Webhooks:       h,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})
}

func TestRoutes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=tok&hub.challenge=9", "", http.StatusOK},
		{http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=bad&hub.challenge=9", "", http.StatusForbidden},
		{http.MethodPost, "/webhook", `{"object":"page"}`, http.StatusOK},
		{http.MethodPost, "/twilio-webhook", "From=%2B1555&Body=hi", http.StatusOK},
		{http.MethodPost, "/respondio-webhook", `{"contact":{"id":"c"}}`, http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}
