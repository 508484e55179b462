// Package handlers exposes the inbound webhook endpoints for every
// channel and maps the relay's error policy onto HTTP: webhook callers
// always get a well-formed acknowledgment, auth failures abort with
// 401/403, and everything else is absorbed.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/omnirelay/channel-bridge/internal/bridge"
	"github.com/omnirelay/channel-bridge/internal/channels/respondio"
	"github.com/omnirelay/channel-bridge/internal/channels/twilio"
	"github.com/omnirelay/channel-bridge/internal/verify"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

var webhookTracer = otel.Tracer("bridge.internal.http.webhooks")

// RespondIoSecretHeader carries the shared secret on Respond.io webhooks.
const RespondIoSecretHeader = "X-Respondio-Secret"

// metaAck is the body Meta expects on every processed push webhook.
const metaAck = "EVENT_RECEIVED"

// PushChannel pairs a parser with its push transport.
type PushChannel interface {
	bridge.Parser
	bridge.Sender
}

// Config wires the webhook handler.
type Config struct {
	Dispatcher *bridge.Dispatcher

	WhatsApp  PushChannel
	Messenger PushChannel
	Twilio    *twilio.Adapter
	RespondIo *respondio.Adapter

	VerifyToken     string
	MetaAppSecret   string
	RespondIoSecret string

	Logger *logging.Logger
}

// Handler serves all inbound webhook endpoints.
type Handler struct {
	dispatcher *bridge.Dispatcher

	whatsapp  PushChannel
	messenger PushChannel
	twilio    *twilio.Adapter
	respondio *respondio.Adapter

	verifyToken     string
	metaAppSecret   string
	respondIoSecret string

	logger *logging.Logger
}

// NewHandler creates the webhook handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Dispatcher == nil {
		panic("handlers: dispatcher cannot be nil")
	}
	if cfg.WhatsApp == nil || cfg.Messenger == nil {
		panic("handlers: whatsapp and messenger adapters cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	tw := cfg.Twilio
	if tw == nil {
		tw = twilio.NewAdapter()
	}
	ri := cfg.RespondIo
	if ri == nil {
		ri = respondio.NewAdapter()
	}
	return &Handler{
		dispatcher:      cfg.Dispatcher,
		whatsapp:        cfg.WhatsApp,
		messenger:       cfg.Messenger,
		twilio:          tw,
		respondio:       ri,
		verifyToken:     cfg.VerifyToken,
		metaAppSecret:   cfg.MetaAppSecret,
		respondIoSecret: cfg.RespondIoSecret,
		logger:          logger,
	}
}

// VerifyMetaWebhook handles GET /webhook, the Meta subscription
// handshake shared by WhatsApp and Messenger.
func (h *Handler) VerifyMetaWebhook(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	echo, ok := verify.Subscription(mode, token, challenge, h.verifyToken)
	if !ok {
		h.logger.Warn("webhook verification rejected", "mode", mode)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	h.logger.Info("webhook verified")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, echo)
}

// MetaWebhook handles POST /webhook for both WhatsApp and Messenger,
// routed by the payload's top-level object field. The response is
// always a 200 "EVENT_RECEIVED" ack (Meta retries anything else), even
// when parsing or dispatch failed; only a bad signature aborts early.
func (h *Handler) MetaWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "webhooks.meta")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		h.writeMetaAck(w)
		return
	}

	if !verify.MetaSignature(h.metaAppSecret, body, r.Header.Get("X-Hub-Signature-256")) {
		h.logger.Warn("invalid meta webhook signature")
		span.RecordError(fmt.Errorf("invalid signature"))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var peek struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(body, &peek); err != nil {
		h.logger.Warn("unparseable meta webhook body", "error", err)
		span.RecordError(err)
		h.writeMetaAck(w)
		return
	}
	span.SetAttributes(attribute.String("bridge.meta.object", peek.Object))

	switch peek.Object {
	case "whatsapp_business_account":
		h.dispatcher.DispatchPush(ctx, h.whatsapp, h.whatsapp, body)
	case "page":
		h.dispatcher.DispatchPush(ctx, h.messenger, h.messenger, body)
	default:
		h.logger.Info("ignoring webhook for unknown object", "object", peek.Object)
	}

	h.writeMetaAck(w)
}

// TwilioWebhook handles POST /twilio-webhook. Replies are rendered
// into the TwiML response body; a parse failure still yields an empty
// well-formed document.
func (h *Handler) TwilioWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "webhooks.twilio")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read twilio webhook body", "error", err)
		body = nil
	}

	replies := h.dispatcher.DispatchInline(ctx, h.twilio, body)

	w.Header().Set("Content-Type", twilio.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(twilio.RenderReplies(replies))
}

// RespondIoWebhook handles POST /respondio-webhook. The optional shared
// secret is checked before any parsing or downstream call; replies are
// returned inline as {"messages":[...]}.
func (h *Handler) RespondIoWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "webhooks.respondio")
	defer span.End()

	if !verify.SecretHeader(r.Header.Get(RespondIoSecretHeader), h.respondIoSecret) {
		h.logger.Warn("invalid respond.io webhook secret")
		span.RecordError(fmt.Errorf("invalid shared secret"))
		w.Header().Set("Content-Type", respondio.ContentType)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read respond.io webhook body", "error", err)
		body = nil
	}

	replies := h.dispatcher.DispatchInline(ctx, h.respondio, body)

	w.Header().Set("Content-Type", respondio.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(respondio.RenderReplies(replies))
}

// HealthCheck returns a simple health check response.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) writeMetaAck(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, metaAck)
}
