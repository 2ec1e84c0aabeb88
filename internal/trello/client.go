// Package trello is a small client for the Trello REST API covering the
// calls needed to publish a shopping checklist.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Trello API host.
const DefaultBaseURL = "https://api.trello.com"

// Credentials authenticate every request. They are passed to NewClient and
// never stored globally.
type Credentials struct {
	Key   string
	Token string
}

// Position places a new card, checklist or item within its parent.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// NewCard is the payload for CreateCard.
type NewCard struct {
	Name   string
	Desc   string
	Pos    Position
	ListID string
}

// Card is a Trello card.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	IDList   string `json:"idList"`
	IDBoard  string `json:"idBoard"`
	URL      string `json:"url"`
	ShortURL string `json:"shortUrl"`
}

// NewChecklist is the payload for CreateChecklist.
type NewChecklist struct {
	Name string
	Pos  Position
}

// Checklist is a checklist on a card.
type Checklist struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDCard  string `json:"idCard"`
	IDBoard string `json:"idBoard"`
}

// NewCheckItem is the payload for CreateCheckItem.
type NewCheckItem struct {
	Name    string
	Pos     Position
	Checked bool
}

// CheckItem is one entry of a checklist.
type CheckItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IDChecklist string `json:"idChecklist"`
	State       string `json:"state"`
}

// List is a column of a board.
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Closed  bool   `json:"closed"`
	IDBoard string `json:"idBoard"`
}

// Client calls the Trello API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials
}

// NewClient creates a Client. An empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, creds Credentials) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		creds:      creds,
	}
}

// CreateCard adds a card to a list.
func (c *Client) CreateCard(ctx context.Context, card NewCard) (*Card, error) {
	params := url.Values{}
	params.Set("name", card.Name)
	params.Set("desc", card.Desc)
	params.Set("idList", card.ListID)
	if card.Pos != "" {
		params.Set("pos", string(card.Pos))
	}

	var out Card
	if err := c.do(ctx, http.MethodPost, "/1/cards", params, &out); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &out, nil
}

// CreateChecklist adds a checklist to a card.
func (c *Client) CreateChecklist(ctx context.Context, cardID string, checklist NewChecklist) (*Checklist, error) {
	params := url.Values{}
	params.Set("name", checklist.Name)
	if checklist.Pos != "" {
		params.Set("pos", string(checklist.Pos))
	}

	var out Checklist
	path := "/1/cards/" + url.PathEscape(cardID) + "/checklists"
	if err := c.do(ctx, http.MethodPost, path, params, &out); err != nil {
		return nil, fmt.Errorf("failed to create checklist %q: %w", checklist.Name, err)
	}
	return &out, nil
}

// CreateCheckItem adds an item to a checklist.
func (c *Client) CreateCheckItem(ctx context.Context, checklistID string, item NewCheckItem) (*CheckItem, error) {
	params := url.Values{}
	params.Set("name", item.Name)
	params.Set("checked", strconv.FormatBool(item.Checked))
	if item.Pos != "" {
		params.Set("pos", string(item.Pos))
	}

	var out CheckItem
	path := "/1/checklists/" + url.PathEscape(checklistID) + "/checkItems"
	if err := c.do(ctx, http.MethodPost, path, params, &out); err != nil {
		return nil, fmt.Errorf("failed to create check item %q: %w", item.Name, err)
	}
	return &out, nil
}

// GetLists returns the lists of a board.
func (c *Client) GetLists(ctx context.Context, boardID string) ([]List, error) {
	var out []List
	path := "/1/boards/" + url.PathEscape(boardID) + "/lists"
	if err := c.do(ctx, http.MethodGet, path, url.Values{}, &out); err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	return out, nil
}

// do sends params as the query string, as the Trello API expects, and
// decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	params.Set("key", c.creds.Key)
	params.Set("token", c.creds.Token)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("trello api error: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
