package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigPathEnv names the environment variable holding the config file path.
const ConfigPathEnv = "DINNER_DAILY_CONFIG"

// Config holds the configuration for the application.
type Config struct {
	DBPath    string `toml:"db_path"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Trello Config (required by the checklist command)
	TrelloAPIKey   string `toml:"trello_api_key"`
	TrelloAPIToken string `toml:"trello_api_token"`
	TrelloListID   string `toml:"trello_list_id"`
	TrelloBaseURL  string `toml:"trello_base_url"`
	MenuPageURL    string `toml:"menu_page_url"`

	// Ghost Config (required by the post command)
	GhostURL      string `toml:"ghost_api_url"`
	GhostAdminKey string `toml:"ghost_admin_api_key"`

	// Dinner Daily API Config (required by the fetch command)
	APIURL   string `toml:"api_url"`
	APIToken string `toml:"api_token"`
}

// envVars maps environment variables to the fields they override.
var envVars = []struct {
	name  string
	field func(*Config) *string
}{
	{"DINNER_DAILY_DB_PATH", func(c *Config) *string { return &c.DBPath }},
	{"LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
	{"LOG_FORMAT", func(c *Config) *string { return &c.LogFormat }},
	{"TRELLO_API_KEY", func(c *Config) *string { return &c.TrelloAPIKey }},
	{"TRELLO_API_TOKEN", func(c *Config) *string { return &c.TrelloAPIToken }},
	{"TRELLO_LIST_ID", func(c *Config) *string { return &c.TrelloListID }},
	{"TRELLO_BASE_URL", func(c *Config) *string { return &c.TrelloBaseURL }},
	{"MENU_PAGE_URL", func(c *Config) *string { return &c.MenuPageURL }},
	{"GHOST_API_URL", func(c *Config) *string { return &c.GhostURL }},
	{"GHOST_ADMIN_API_KEY", func(c *Config) *string { return &c.GhostAdminKey }},
	{"DINNER_DAILY_API_URL", func(c *Config) *string { return &c.APIURL }},
	{"DINNER_DAILY_TOKEN", func(c *Config) *string { return &c.APIToken }},
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DBPath:    "dinner-daily.db",
		LogLevel:  "info",
		LogFormat: "text",
		APIURL:    "https://db.thedinnerdaily.com/api/v2",
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (or at $DINNER_DAILY_CONFIG when path is empty), then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	for _, v := range envVars {
		if value := os.Getenv(v.name); value != "" {
			*v.field(cfg) = value
		}
	}

	return cfg, nil
}

// NewFromEnv creates a Config from defaults and environment variables only.
func NewFromEnv() (*Config, error) {
	return Load("")
}

// RequireTrello checks the settings needed to publish a checklist.
func (c *Config) RequireTrello() error {
	if c.TrelloAPIKey == "" {
		return fmt.Errorf("TRELLO_API_KEY environment variable not set")
	}
	if c.TrelloAPIToken == "" {
		return fmt.Errorf("TRELLO_API_TOKEN environment variable not set")
	}
	if c.TrelloListID == "" {
		return fmt.Errorf("TRELLO_LIST_ID environment variable not set")
	}
	return nil
}

// RequireGhost checks the settings needed to publish a post.
func (c *Config) RequireGhost() error {
	if c.GhostURL == "" {
		return fmt.Errorf("GHOST_API_URL environment variable not set")
	}
	if c.GhostAdminKey == "" {
		return fmt.Errorf("GHOST_ADMIN_API_KEY environment variable not set")
	}
	return nil
}

// RequireAPI checks the settings needed to fetch a week from the menu API.
func (c *Config) RequireAPI() error {
	if c.APIURL == "" {
		return fmt.Errorf("DINNER_DAILY_API_URL environment variable not set")
	}
	if c.APIToken == "" {
		return fmt.Errorf("DINNER_DAILY_TOKEN environment variable not set")
	}
	return nil
}
