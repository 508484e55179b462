package bridge

import "errors"

// Channel identifies a messaging provider integration.
type Channel string

const (
	ChannelWhatsApp       Channel = "whatsapp"
	ChannelMessenger      Channel = "messenger"
	ChannelTwilioWhatsApp Channel = "twilio_whatsapp"
	ChannelRespondIo      Channel = "respondio"
)

// ErrMalformedPayload marks an inbound body that could not be
// interpreted at all. Missing optional substructure is not malformed;
// adapters produce zero messages for that instead.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// InboundMessage is one normalized inbound user message. UserID is the
// channel-scoped identifier the conversation runtime keys sessions on,
// so it must be stable across webhooks for the same end user.
type InboundMessage struct {
	Channel Channel
	UserID  string
	Text    string
}

// OutboundReply is one reply destined for a single user on the channel
// the message arrived on.
type OutboundReply struct {
	UserID string
	Text   string
}
