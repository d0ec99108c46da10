package adminfn

// Package adminfn calls the privileged admin-check function endpoint.
// The endpoint runs with elevated database access and answers whether a
// user holds the admin role, bypassing per-user row visibility rules.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config configures the admin-check function client.
type Config struct {
	// Endpoint is the full URL of the is-admin function.
	Endpoint string
	// Timeout bounds each call; default 5s.
	Timeout time.Duration
	// Client overrides the HTTP client when set.
	Client *http.Client
}

// Client invokes the is-admin function with the caller's bearer token.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient builds an admin-check function client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("admin function endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{endpoint: endpoint, client: hc}, nil
}

type checkRequest struct {
	UserID string `json:"user_id"`
}

type checkResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// IsAdmin asks the privileged function whether userID holds the admin role.
// The bearer token authenticates the calling session; the function verifies
// it before touching role data.
func (c *Client) IsAdmin(ctx context.Context, userID, bearerToken string) (bool, error) {
	if userID == "" {
		return false, errors.New("user ID is required")
	}
	if bearerToken == "" {
		return false, errors.New("bearer token is required")
	}

	body, err := json.Marshal(checkRequest{UserID: userID})
	if err != nil {
		return false, fmt.Errorf("encode admin check payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create admin check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("admin check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return false, fmt.Errorf("read admin check error response: %w", readErr)
		}
		return false, fmt.Errorf("admin check %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var out checkResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return false, fmt.Errorf("decode admin check response: %w", decodeErr)
	}
	return out.IsAdmin, nil
}
