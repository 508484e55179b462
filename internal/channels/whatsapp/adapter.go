// Package whatsapp is the WhatsApp Business Cloud channel adapter:
// webhook parsing plus the Cloud API send client.
package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omnirelay/channel-bridge/internal/bridge"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

// Adapter normalizes WhatsApp webhooks and pushes replies through the
// Cloud API.
type Adapter struct {
	client *Client
	logger *logging.Logger
}

var (
	_ bridge.Parser = (*Adapter)(nil)
	_ bridge.Sender = (*Adapter)(nil)
)

// NewAdapter creates a WhatsApp adapter.
func NewAdapter(token, phoneNumberID string, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Adapter{
		client: NewClient(token, phoneNumberID),
		logger: logger,
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (a *Adapter) SetGraphAPIBase(base string) {
	a.client.SetGraphAPIBase(base)
}

// Channel reports the channel this adapter serves.
func (a *Adapter) Channel() bridge.Channel {
	return bridge.ChannelWhatsApp
}

// ParseInbound walks entry[].changes[].value.messages[] and yields one
// message per inbound entry, in payload order. Entries without a
// messages list (status updates and the like) are skipped. Only a body
// that is not JSON at all is an error.
func (a *Adapter) ParseInbound(body []byte) ([]bridge.InboundMessage, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("whatsapp: %w: %v", bridge.ErrMalformedPayload, err)
	}
	if event.Object != "whatsapp_business_account" {
		return nil, nil
	}

	var msgs []bridge.InboundMessage
	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			for _, m := range change.Value.Messages {
				text := ""
				if m.Text != nil {
					text = m.Text.Body
				}
				msgs = append(msgs, bridge.InboundMessage{
					Channel: bridge.ChannelWhatsApp,
					UserID:  m.From,
					Text:    text,
				})
			}
		}
	}
	return msgs, nil
}

// SendReply pushes one text reply to the user's phone number.
func (a *Adapter) SendReply(ctx context.Context, userID, text string) error {
	_, err := a.client.SendTextMessage(ctx, userID, text)
	if err != nil {
		a.logger.Error("whatsapp: failed to send message",
			"to", userID,
			"error", err,
		)
	}
	return err
}
