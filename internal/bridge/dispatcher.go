package bridge

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/omnirelay/channel-bridge/internal/observability/metrics"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

var dispatchTracer = otel.Tracer("bridge.internal.dispatch")

// Dispatcher runs the normalize → interact → reply pipeline for one
// inbound webhook request. It is stateless and safe for concurrent use;
// each call is request-scoped.
type Dispatcher struct {
	convo   ConversationClient
	logger  *logging.Logger
	metrics *metrics.BridgeMetrics
}

// NewDispatcher creates a dispatcher. Metrics may be nil.
func NewDispatcher(convo ConversationClient, m *metrics.BridgeMetrics, logger *logging.Logger) *Dispatcher {
	if convo == nil {
		panic("bridge: conversation client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{convo: convo, logger: logger, metrics: m}
}

// DispatchPush normalizes the body with parser and pushes every reply
// through sender. Parse failures are swallowed after logging: push
// webhooks are always acknowledged so the provider does not retry.
// A failed send is logged and does not abort the remaining sends or
// the remaining messages. Returns the number of messages dispatched.
func (d *Dispatcher) DispatchPush(ctx context.Context, parser Parser, sender Sender, body []byte) int {
	ctx, span := dispatchTracer.Start(ctx, "bridge.dispatch.push")
	defer span.End()
	span.SetAttributes(attribute.String("bridge.channel", string(parser.Channel())))

	channel := string(parser.Channel())
	msgs, err := parser.ParseInbound(body)
	if err != nil {
		d.logger.Warn("failed to parse inbound webhook", "channel", channel, "error", err)
		d.metrics.ObserveInbound(channel, "malformed")
		span.RecordError(err)
		return 0
	}
	d.metrics.ObserveInbound(channel, "ok")

	for _, msg := range msgs {
		replies := d.interact(ctx, channel, msg)
		for _, reply := range replies {
			if err := sender.SendReply(ctx, reply.UserID, reply.Text); err != nil {
				d.logger.Error("failed to deliver reply",
					"channel", channel,
					"user_id", reply.UserID,
					"error", err,
				)
				d.metrics.ObserveSendFailure(channel)
				span.RecordError(err)
			}
		}
	}
	return len(msgs)
}

// DispatchInline normalizes the body with parser and returns the
// ordered replies for the caller to render into the webhook response.
// A parse failure yields an empty reply list so inline channels can
// still return a well-formed empty body.
func (d *Dispatcher) DispatchInline(ctx context.Context, parser Parser, body []byte) []OutboundReply {
	ctx, span := dispatchTracer.Start(ctx, "bridge.dispatch.inline")
	defer span.End()
	span.SetAttributes(attribute.String("bridge.channel", string(parser.Channel())))

	channel := string(parser.Channel())
	msgs, err := parser.ParseInbound(body)
	if err != nil {
		d.logger.Warn("failed to parse inbound webhook", "channel", channel, "error", err)
		d.metrics.ObserveInbound(channel, "malformed")
		span.RecordError(err)
		return nil
	}
	d.metrics.ObserveInbound(channel, "ok")

	var replies []OutboundReply
	for _, msg := range msgs {
		replies = append(replies, d.interact(ctx, channel, msg)...)
	}
	return replies
}

func (d *Dispatcher) interact(ctx context.Context, channel string, msg InboundMessage) []OutboundReply {
	start := time.Now()
	texts := d.convo.Interact(ctx, msg.UserID, msg.Text)
	d.metrics.ObserveInteractLatency("ok", time.Since(start).Seconds())
	d.metrics.ObserveDispatched(channel)

	d.logger.Info("dispatched message",
		"channel", channel,
		"user_id", msg.UserID,
		"replies", len(texts),
	)

	replies := make([]OutboundReply, 0, len(texts))
	for _, text := range texts {
		replies = append(replies, OutboundReply{UserID: msg.UserID, Text: text})
	}
	return replies
}
