// Package messenger is the Facebook Messenger channel adapter: page
// webhook parsing plus the Graph Send API client.
package messenger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omnirelay/channel-bridge/internal/bridge"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

// Adapter normalizes Messenger page webhooks and pushes replies
// through the Send API.
type Adapter struct {
	client *Client
	logger *logging.Logger
}

var (
	_ bridge.Parser = (*Adapter)(nil)
	_ bridge.Sender = (*Adapter)(nil)
)

// NewAdapter creates a Messenger adapter.
func NewAdapter(pageAccessToken string, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Adapter{
		client: NewClient(pageAccessToken),
		logger: logger,
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (a *Adapter) SetGraphAPIBase(base string) {
	a.client.SetGraphAPIBase(base)
}

// Channel reports the channel this adapter serves.
func (a *Adapter) Channel() bridge.Channel {
	return bridge.ChannelMessenger
}

// ParseInbound walks entry[].messaging[]. An event yields a message
// only when both sender.id and message.text are present; receipts and
// attachment-only events are skipped.
func (a *Adapter) ParseInbound(body []byte) ([]bridge.InboundMessage, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("messenger: %w: %v", bridge.ErrMalformedPayload, err)
	}
	if event.Object != "page" {
		return nil, nil
	}

	var msgs []bridge.InboundMessage
	for _, entry := range event.Entry {
		for _, m := range entry.Messaging {
			if m.Sender.ID == "" || m.Message == nil || m.Message.Text == "" {
				continue
			}
			msgs = append(msgs, bridge.InboundMessage{
				Channel: bridge.ChannelMessenger,
				UserID:  m.Sender.ID,
				Text:    m.Message.Text,
			})
		}
	}
	return msgs, nil
}

// SendReply pushes one text reply to the page-scoped user id.
func (a *Adapter) SendReply(ctx context.Context, userID, text string) error {
	_, err := a.client.SendTextMessage(ctx, userID, text)
	if err != nil {
		a.logger.Error("messenger: failed to send message",
			"recipient_id", userID,
			"error", err,
		)
	}
	return err
}
