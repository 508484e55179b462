package messenger

// WebhookEvent is the top-level Messenger page webhook payload.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents a single page's webhook events.
type Entry struct {
	ID        string      `json:"id"`
	Time      int64       `json:"time"`
	Messaging []Messaging `json:"messaging"`
}

// Messaging is a single messaging event. Delivery/read receipts carry
// no Message and are skipped during parsing.
type Messaging struct {
	Sender    Principal `json:"sender"`
	Recipient Principal `json:"recipient"`
	Timestamp int64     `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
}

// Principal identifies a sender or recipient by page-scoped id.
type Principal struct {
	ID string `json:"id"`
}

// Message contains the message content.
type Message struct {
	MID  string `json:"mid"`
	Text string `json:"text"`
}

// SendRequest is the payload posted to the Send API.
type SendRequest struct {
	Recipient Principal   `json:"recipient"`
	Message   SendMessage `json:"message"`
}

// SendMessage is the outbound message content.
type SendMessage struct {
	Text string `json:"text"`
}

// SendResponse is the Send API response.
type SendResponse struct {
	RecipientID string     `json:"recipient_id"`
	MessageID   string     `json:"message_id"`
	Error       *SendError `json:"error,omitempty"`
}

// SendError is an error returned by the Send API.
type SendError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}
