// Package respondio is the Respond.io custom-channel adapter. Like the
// Twilio adapter it replies inline: the reply list is serialized into
// the JSON response body of the webhook request.
package respondio

import (
	"encoding/json"
	"fmt"

	"github.com/omnirelay/channel-bridge/internal/bridge"
)

// UnknownUser is the placeholder user id when the payload carries
// neither a contact id nor a phone number.
const UnknownUser = "unknown_user"

// ContentType is the media type of rendered reply bodies.
const ContentType = "application/json"

// webhookPayload tolerates both Respond.io payload generations: text
// arrives under data.text on newer webhooks and message.text on older
// ones.
type webhookPayload struct {
	Contact struct {
		ID    flexID `json:"id"`
		Phone string `json:"phone"`
	} `json:"contact"`
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// flexID accepts contact ids sent either as a JSON string or a number.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	// Null or an unexpected shape degrades to empty rather than failing
	// the whole payload.
	*f = ""
	return nil
}

// replyBody is the inline response shape Respond.io expects.
type replyBody struct {
	Messages []replyMessage `json:"messages"`
}

type replyMessage struct {
	Text string `json:"text"`
}

// Adapter normalizes Respond.io webhooks.
type Adapter struct{}

var _ bridge.Parser = (*Adapter)(nil)

// NewAdapter creates a Respond.io adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Channel reports the channel this adapter serves.
func (a *Adapter) Channel() bridge.Channel {
	return bridge.ChannelRespondIo
}

// ParseInbound produces exactly one message per webhook. The user id
// resolves contact.id, then contact.phone, then the UnknownUser
// placeholder; the text resolves data.text, then message.text, then "".
func (a *Adapter) ParseInbound(body []byte) ([]bridge.InboundMessage, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("respondio: %w: %v", bridge.ErrMalformedPayload, err)
	}

	userID := string(payload.Contact.ID)
	if userID == "" {
		userID = payload.Contact.Phone
	}
	if userID == "" {
		userID = UnknownUser
	}

	text := payload.Data.Text
	if text == "" {
		text = payload.Message.Text
	}

	return []bridge.InboundMessage{{
		Channel: bridge.ChannelRespondIo,
		UserID:  userID,
		Text:    text,
	}}, nil
}

// RenderReplies serializes the ordered reply list into the inline
// {"messages":[...]} response body. With no replies the messages list
// is empty but present.
func RenderReplies(replies []bridge.OutboundReply) []byte {
	body := replyBody{Messages: make([]replyMessage, 0, len(replies))}
	for _, r := range replies {
		body.Messages = append(body.Messages, replyMessage{Text: r.Text})
	}
	out, _ := json.Marshal(body)
	return out
}
