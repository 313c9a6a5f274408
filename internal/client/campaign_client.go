package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

// CampaignClient reads and writes campaigns through the HTTP API. It satisfies
// generation.Records so an orchestrator can run outside the server.
type CampaignClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewCampaignClient creates a campaign API client. token may be empty behind a gateway.
func NewCampaignClient(baseURL, token string, timeout time.Duration) *CampaignClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CampaignClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type apiError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (c *CampaignClient) CreateCampaign(ctx context.Context, p model.Principal, in model.CampaignInput) (*model.Campaign, error) {
	var out struct {
		Campaign *model.Campaign `json:"campaign"`
	}
	if err := c.do(ctx, "create campaign", http.MethodPost, "/api/campaigns", in, &out); err != nil {
		return nil, err
	}
	if out.Campaign == nil {
		return nil, store.Unavailable("create campaign", fmt.Errorf("empty response"))
	}
	return out.Campaign, nil
}

func (c *CampaignClient) GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error) {
	var out model.Campaign
	if err := c.do(ctx, "get campaign", http.MethodGet, "/api/campaigns/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CampaignClient) UpdateCampaign(ctx context.Context, p model.Principal, id string, patch model.Fields) (*model.Campaign, error) {
	var out model.Campaign
	if err := c.do(ctx, "update campaign", http.MethodPut, "/api/campaigns/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CampaignClient) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return store.Unavailable(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return store.Unavailable(op, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && len(apiErr.Error.Details) > 0 {
			return &model.ValidationError{Fields: apiErr.Error.Details}
		}
		return model.NewValidationError("request", strings.TrimSpace(string(respBody)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return store.Unavailable(op, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return store.Unavailable(op, fmt.Errorf("failed to unmarshal response: %w", err))
	}
	return nil
}
