package ghost

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dinner-daily/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Post is a menu post as returned by the Ghost Admin API.
type Post struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	HTML      string `json:"html,omitempty"`
	Status    string `json:"status,omitempty"`
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PostsResponse is the top-level structure of the Ghost API response for posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Client publishes rendered menus to a Ghost blog.
type Client interface {
	FindPostByTitle(ctx context.Context, title string) (*Post, error)
	CreatePost(ctx context.Context, title, html string, publish bool) (*Post, error)
}

type ghostClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a new Ghost Admin API client.
func NewClient(cfg *config.Config) Client {
	return &ghostClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
	}
}

// FindPostByTitle returns the post with exactly this title, or nil when
// there is none. Drafts count.
func (c *ghostClient) FindPostByTitle(ctx context.Context, title string) (*Post, error) {
	query := url.Values{}
	query.Set("filter", fmt.Sprintf("title:'%s'", strings.ReplaceAll(title, "'", `\'`)))
	query.Set("fields", "id,title,status,url,updated_at")
	query.Set("limit", "1")

	resp, err := c.do(ctx, http.MethodGet, "/ghost/api/v3/admin/posts/?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin api error: status %d", resp.StatusCode)
	}

	var response PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, p := range response.Posts {
		if p.Title == title {
			return &p, nil
		}
	}
	return nil, nil
}

// CreatePost creates a new post from rendered HTML. Unpublished posts are
// left as drafts.
func (c *ghostClient) CreatePost(ctx context.Context, title, html string, publish bool) (*Post, error) {
	status := "draft"
	if publish {
		status = "published"
	}

	body, err := json.Marshal(PostsResponse{Posts: []Post{{Title: title, HTML: html, Status: status}}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/ghost/api/v3/admin/posts/?source=html", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp any
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("admin api error: status %d, body: %v", resp.StatusCode, errResp)
	}

	var response PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Posts) == 0 {
		return nil, fmt.Errorf("no post returned from api")
	}
	return &response.Posts[0], nil
}

func (c *ghostClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	token, err := c.createAdminToken()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin token: %w", err)
	}

	endpoint := strings.TrimRight(c.config.GhostURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Ghost "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return resp, nil
}

// createAdminToken generates a short-lived JWT for the Admin API.
func (c *ghostClient) createAdminToken() (string, error) {
	id, secretHex, ok := strings.Cut(c.config.GhostAdminKey, ":")
	if !ok || id == "" || strings.Contains(secretHex, ":") {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/v3/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
