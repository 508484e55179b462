package whatsapp

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

// Client sends messages via the WhatsApp Business Cloud API.
type Client struct {
	token         string
	phoneNumberID string
	graphAPIBase  string
	httpClient    *http.Client
}

// NewClient creates a Cloud API client for the configured phone number.
func NewClient(token, phoneNumberID string) *Client {
	return &Client{
		token:         token,
		phoneNumberID: phoneNumberID,
		graphAPIBase:  config.DefaultGraphAPIBase,
		httpClient:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (c *Client) SetGraphAPIBase(base string) {
	c.graphAPIBase = base
}

// SendTextMessage sends a plain text message to the given phone number.
func (c *Client) SendTextMessage(ctx context.Context, to, text string) (*SendResponse, error) {
	req := SendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             SendText{Body: text},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.graphAPIBase, c.phoneNumberID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: read response: %w", err)
	}

	var sendResp SendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		return nil, fmt.Errorf("whatsapp: unmarshal response: %w", err)
	}

	if sendResp.Error != nil {
		return &sendResp, fmt.Errorf("whatsapp: API error %d: %s", sendResp.Error.Code, sendResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return &sendResp, fmt.Errorf("whatsapp: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return &sendResp, nil
}
