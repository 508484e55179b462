package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/omnirelay/channel-bridge/internal/config"
)

const defaultHTTPTimeout = 10 * time.Second

// Client sends messages via the Messenger Send API. The page access
// token rides as a query parameter, which is how the Send API
// authenticates page-level calls.
type Client struct {
	pageAccessToken string
	graphAPIBase    string
	httpClient      *http.Client
}

// NewClient creates a Send API client.
func NewClient(pageAccessToken string) *Client {
	return &Client{
		pageAccessToken: pageAccessToken,
		graphAPIBase:    config.DefaultGraphAPIBase,
		httpClient:      &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (c *Client) SetGraphAPIBase(base string) {
	c.graphAPIBase = base
}

// SendTextMessage sends a plain text message to the given recipient.
func (c *Client) SendTextMessage(ctx context.Context, recipientID, text string) (*SendResponse, error) {
	req := SendRequest{
		Recipient: Principal{ID: recipientID},
		Message:   SendMessage{Text: text},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("messenger: marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/me/messages?access_token=%s", c.graphAPIBase, c.pageAccessToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("messenger: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("messenger: send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("messenger: read response: %w", err)
	}

	var sendResp SendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		return nil, fmt.Errorf("messenger: unmarshal response: %w", err)
	}

	if sendResp.Error != nil {
		return &sendResp, fmt.Errorf("messenger: API error %d: %s", sendResp.Error.Code, sendResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return &sendResp, fmt.Errorf("messenger: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return &sendResp, nil
}
