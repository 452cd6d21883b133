// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package directory resolves an organization code to its official contact
// email through the external directory service.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/oliverandrich/accounts/internal/config"
)

// Client talks to the organization directory over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a directory client.
func NewClient(cfg *config.DirectoryConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("directory base URL is required")
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// ContactEmail resolves the official contact email for an organization code.
func (c *Client) ContactEmail(ctx context.Context, code string) (string, error) {
	endpoint := fmt.Sprintf("%s/organizations/%s", c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory lookup: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		ContactEmail string `json:"contact_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding directory response: %w", err)
	}
	if payload.ContactEmail == "" {
		return "", fmt.Errorf("directory entry for %q has no contact email", code)
	}

	return payload.ContactEmail, nil
}
