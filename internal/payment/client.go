package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// CreateSession opens a hosted checkout session. The caller redirects the
// user to the returned session URL; completion arrives later via webhook.
func (c *Client) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode session params: %w", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "v1", "checkout", "sessions")
	if err != nil {
		return nil, fmt.Errorf("build session url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment api status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("payment api returned session without id")
	}

	return &session, nil
}

type lineItemsResponse struct {
	Data []LineItem `json:"data"`
}

// ListLineItems fetches what the processor actually charged for a session.
// Reconciliation treats this, not the cart, as the source of truth.
func (c *Client) ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	endpoint, err := url.JoinPath(c.baseURL, "v1", "checkout", "sessions", sessionID, "line_items")
	if err != nil {
		return nil, fmt.Errorf("build line items url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment api status %d", resp.StatusCode)
	}

	var body lineItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}

	return body.Data, nil
}
