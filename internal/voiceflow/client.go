// Package voiceflow is the typed client for the conversational runtime.
package voiceflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/omnirelay/channel-bridge/internal/observability/metrics"
	"github.com/omnirelay/channel-bridge/pkg/logging"
)

const (
	defaultBaseURL = "https://general-runtime.voiceflow.com"
	defaultTimeout = 15 * time.Second

	// UnavailableReply is sent when the runtime cannot be reached or
	// returns an unusable response.
	UnavailableReply = "Sorry, I'm temporarily unavailable. Please try again in a moment."
	// NoAnswerReply is sent when the runtime answers with no text items.
	NoAnswerReply = "Sorry, I don't have an answer for that right now."
)

// Client calls the runtime's stateful interact API. The runtime keys
// conversation sessions on the user id, so callers must pass a stable
// per-user identifier.
type Client struct {
	apiKey     string
	versionID  string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BridgeMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithVersionID scopes the session path by a runtime version.
func WithVersionID(versionID string) Option {
	return func(c *Client) { c.versionID = versionID }
}

// WithBaseURL overrides the runtime base URL (useful for testing).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithTimeout bounds the runtime call. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMetrics attaches fallback counters.
func WithMetrics(m *metrics.BridgeMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a runtime client with a bounded request timeout.
func NewClient(apiKey string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type interactRequest struct {
	Request interactAction `json:"request"`
}

type interactAction struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

// replyItem tolerates both runtime response generations: the message
// lives under payload.message on newer runtimes and at the top level on
// older ones.
type replyItem struct {
	Type    string `json:"type"`
	Payload struct {
		Message string `json:"message"`
	} `json:"payload"`
	Message string `json:"message"`
}

// Interact sends one user turn and returns the ordered text replies.
// It never returns an empty slice and never fails: runtime errors,
// timeouts and unusable bodies all degrade into a single fallback
// reply so the webhook pipeline always completes.
func (c *Client) Interact(ctx context.Context, userID, text string) []string {
	items, err := c.interact(ctx, userID, text)
	if err != nil {
		c.logger.Warn("conversation runtime unavailable", "user_id", userID, "error", err)
		c.metrics.ObserveFallback("unavailable")
		return []string{UnavailableReply}
	}

	var replies []string
	for _, item := range items {
		if item.Type != "text" {
			continue
		}
		msg := item.Payload.Message
		if msg == "" {
			msg = item.Message
		}
		if msg != "" {
			replies = append(replies, msg)
		}
	}

	if len(replies) == 0 {
		c.logger.Info("runtime returned no text replies", "user_id", userID)
		c.metrics.ObserveFallback("no_answer")
		return []string{NoAnswerReply}
	}
	return replies
}

func (c *Client) interact(ctx context.Context, userID, text string) ([]replyItem, error) {
	body, err := json.Marshal(interactRequest{
		Request: interactAction{Type: "text", Payload: text},
	})
	if err != nil {
		return nil, fmt.Errorf("voiceflow: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.interactURL(userID), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("voiceflow: create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voiceflow: interact: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voiceflow: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voiceflow: unexpected status %d: %s", resp.StatusCode, respBody)
	}

	var items []replyItem
	if err := json.Unmarshal(respBody, &items); err != nil {
		return nil, fmt.Errorf("voiceflow: unmarshal response: %w", err)
	}
	return items, nil
}

func (c *Client) interactURL(userID string) string {
	if c.versionID != "" {
		return fmt.Sprintf("%s/state/%s/user/%s/interact", c.baseURL, url.PathEscape(c.versionID), url.PathEscape(userID))
	}
	return fmt.Sprintf("%s/state/user/%s/interact", c.baseURL, url.PathEscape(userID))
}
