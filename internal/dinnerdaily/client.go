// Package dinnerdaily fetches a week's menu and shopping list from the
// meal-planning service's API.
package dinnerdaily

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dinner-daily/internal/config"
	"dinner-daily/internal/schema"
	"dinner-daily/internal/week"
)

// Client fetches weeks with a bearer token taken from the config.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	validator  *schema.Validator
}

// NewClient creates a client for cfg.APIURL. Fetched weeks are validated
// against the week schema before they are decoded.
func NewClient(cfg *config.Config, validator *schema.Validator) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		token:      cfg.APIToken,
		validator:  validator,
	}
}

// FetchWeek downloads the menu and shopping list for the selected week.
func (c *Client) FetchWeek(ctx context.Context, option week.Option) (week.Week, error) {
	if _, err := week.ParseOption(string(option)); err != nil {
		return week.Week{}, err
	}

	menuData, err := c.get(ctx, "week-menu", option)
	if err != nil {
		return week.Week{}, fmt.Errorf("failed to fetch menu: %w", err)
	}
	listData, err := c.get(ctx, "shopping-list", option)
	if err != nil {
		return week.Week{}, fmt.Errorf("failed to fetch shopping list: %w", err)
	}

	data, err := json.Marshal(map[string]json.RawMessage{
		"menu":          menuData,
		"shopping_list": listData,
	})
	if err != nil {
		return week.Week{}, fmt.Errorf("failed to assemble week: %w", err)
	}

	var w week.Week
	if err := c.validator.Decode(schema.Week, data, &w); err != nil {
		return week.Week{}, err
	}
	return w, nil
}

func (c *Client) get(ctx context.Context, resource string, option week.Option) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s?week=%s", c.baseURL, resource, url.QueryEscape(string(option)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("api returned invalid JSON from %s", resource)
	}
	return body, nil
}
