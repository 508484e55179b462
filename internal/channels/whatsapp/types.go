package whatsapp

// WebhookEvent is the top-level structure of a WhatsApp Business
// Cloud API webhook.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is a single business-account entry in the webhook payload.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps the changed value for one subscribed field.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries the inbound messages, when present.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Messages         []Message `json:"messages"`
}

// Message is one inbound user message.
type Message struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

// Text is the text body of a message.
type Text struct {
	Body string `json:"body"`
}

// SendRequest is the payload posted to the Cloud API messages endpoint.
type SendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             SendText `json:"text"`
}

// SendText is the outbound text body.
type SendText struct {
	Body string `json:"body"`
}

// SendResponse is the Cloud API response after sending a message.
type SendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *SendError `json:"error,omitempty"`
}

// SendError is an error returned by the Cloud API.
type SendError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}
