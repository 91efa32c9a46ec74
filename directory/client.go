// Package directory is the REST client for the platform user directory,
// used only to populate the new-conversation picker. Lookup failures
// degrade to an empty result list; they are logged, never surfaced.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"chatlink/domain"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, token string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// ListPublicUsers returns all users visible to the picker, or an empty
// slice on any failure.
func (c *Client) ListPublicUsers(ctx context.Context) []domain.User {
	return c.fetch(ctx, c.baseURL+"/api/users/public")
}

// SearchUsers queries the directory by free text, or returns an empty
// slice on any failure.
func (c *Client) SearchUsers(ctx context.Context, query string) []domain.User {
	endpoint := fmt.Sprintf("%s/api/users/search?q=%s", c.baseURL, url.QueryEscape(query))
	return c.fetch(ctx, endpoint)
}

func (c *Client) fetch(ctx context.Context, endpoint string) []domain.User {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Warn("Directory request build failed", "endpoint", endpoint, "error", err)
		return []domain.User{}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Directory unreachable", "endpoint", endpoint, "error", err)
		return []domain.User{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Directory lookup failed", "endpoint", endpoint, "status", resp.StatusCode)
		return []domain.User{}
	}

	var users []domain.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		c.log.Warn("Directory response malformed", "endpoint", endpoint, "error", err)
		return []domain.User{}
	}
	return users
}
