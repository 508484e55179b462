package bridge

import "context"

// Parser normalizes a raw webhook body into inbound messages.
// Parsing is pure: the same body always yields the same messages.
type Parser interface {
	Channel() Channel
	ParseInbound(body []byte) ([]InboundMessage, error)
}

// Sender delivers one reply via a channel's push API. Used by channels
// whose replies go out as separate outbound HTTP calls (WhatsApp Cloud,
// Messenger Send API).
type Sender interface {
	SendReply(ctx context.Context, userID, text string) error
}

// ConversationClient is the downstream conversational runtime. Interact
// never returns an empty slice and never fails; downstream errors
// degrade into a one-element fallback reply.
type ConversationClient interface {
	Interact(ctx context.Context, userID, text string) []string
}
