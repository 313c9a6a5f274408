package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/genaimarketing/api/internal/config"
)

// WebhookSender delivers a JSON document to the external generation pipeline
type WebhookSender interface {
	Send(ctx context.Context, payload interface{}) error
}

// WebhookClient posts campaign notifications to a configured URL
type WebhookClient struct {
	httpClient *http.Client
	url        string
}

// NewWebhookClient creates a webhook client. It returns nil when no URL is configured.
func NewWebhookClient(cfg *config.WebhookConfig) *WebhookClient {
	if cfg.URL == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
	}
}

// Send posts payload as JSON. Any non-2xx answer is an error.
func (c *WebhookClient) Send(ctx context.Context, payload interface{}) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
