// Package twilio is the Twilio WhatsApp channel adapter. Replies are
// not pushed through a REST API: they are rendered into the TwiML
// response body of the webhook request itself.
package twilio

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/omnirelay/channel-bridge/internal/bridge"
)

const twimlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// ContentType is the media type of rendered TwiML documents.
const ContentType = "application/xml"

// Adapter normalizes Twilio form-encoded webhooks.
type Adapter struct{}

var _ bridge.Parser = (*Adapter)(nil)

// NewAdapter creates a Twilio adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Channel reports the channel this adapter serves.
func (a *Adapter) Channel() bridge.Channel {
	return bridge.ChannelTwilioWhatsApp
}

// ParseInbound reads the form-encoded From and Body fields. Exactly one
// message is produced per webhook; Twilio never batches. Missing fields
// degrade to empty strings.
func (a *Adapter) ParseInbound(body []byte) ([]bridge.InboundMessage, error) {
	form, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("twilio: %w: %v", bridge.ErrMalformedPayload, err)
	}
	return []bridge.InboundMessage{{
		Channel: bridge.ChannelTwilioWhatsApp,
		UserID:  form.Get("From"),
		Text:    form.Get("Body"),
	}}, nil
}

// RenderReplies builds a single TwiML messaging response containing one
// <Message> element per reply, in order. With no replies it renders an
// empty <Response/> so Twilio still receives a well-formed document.
func RenderReplies(replies []bridge.OutboundReply) []byte {
	var b strings.Builder
	b.WriteString(twimlHeader)
	b.WriteString("<Response>")
	for _, r := range replies {
		b.WriteString("<Message>")
		b.WriteString(escapeXML(r.Text))
		b.WriteString("</Message>")
	}
	b.WriteString("</Response>")
	return []byte(b.String())
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
