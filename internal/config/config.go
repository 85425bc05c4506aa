package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultChannel is the placeholder used when no channel is configured.
	DefaultChannel = "CXXXXXXXXXX"
	// DefaultPageLimit is the number of messages requested from conversations.history.
	DefaultPageLimit = 100
	DefaultLimit     = 5
	DefaultType      = 1

	OAuthTokenEnv = "SLACK_OAUTH_TOKEN"
	BotTokenEnv   = "SLACK_BOT_TOKEN"

	dateLayout = "2006-01-02"
)

// JST is the fixed UTC+9 zone used to interpret --oldest and --newest.
var JST = time.FixedZone("JST", 9*60*60)

type Config struct {
	Channel   string      `yaml:"channel"`
	Limit     int         `yaml:"limit"`
	PageLimit int         `yaml:"page_limit"`
	Type      int         `yaml:"type"`
	Oldest    string      `yaml:"oldest"`
	Newest    string      `yaml:"newest"`
	Sentence  bool        `yaml:"sentence"`
	Pinned    bool        `yaml:"pinned"`
	Reaction  string      `yaml:"reaction"`
	Schedule  string      `yaml:"schedule"`
	Timezone  string      `yaml:"timezone"`
	Slack     SlackConfig `yaml:"slack"`
}

type SlackConfig struct {
	OAuthToken string `yaml:"oauth_token"`
	BotToken   string `yaml:"bot_token"`
	APIURL     string `yaml:"api_url"`
}

// Error reports an invalid or missing configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Option mutates a loaded config before defaults and validation run.
// Command-line flags are applied this way so they win over file values.
type Option func(*Config)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// LoadDotEnv loads credentials from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Limit == 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.PageLimit == 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.Type == 0 {
		cfg.Type = DefaultType
	}
	if cfg.Slack.OAuthToken == "" {
		cfg.Slack.OAuthToken = os.Getenv(OAuthTokenEnv)
	}
	if cfg.Slack.BotToken == "" {
		cfg.Slack.BotToken = os.Getenv(BotTokenEnv)
	}
}

func validate(cfg *Config) error {
	if cfg.Slack.OAuthToken == "" {
		return &Error{Field: OAuthTokenEnv, Reason: "is required"}
	}
	if cfg.Slack.BotToken == "" {
		return &Error{Field: BotTokenEnv, Reason: "is required"}
	}
	if cfg.Type < 1 || cfg.Type > 3 {
		return &Error{Field: "type", Reason: fmt.Sprintf("unsupported summarizer type %d (supported: 1, 2, 3)", cfg.Type)}
	}
	if cfg.Limit < 0 {
		return &Error{Field: "limit", Reason: "must not be negative"}
	}
	if cfg.PageLimit < 0 {
		return &Error{Field: "page_limit", Reason: "must not be negative"}
	}
	if cfg.Pinned && cfg.Reaction != "" {
		return &Error{Field: "pinned", Reason: "cannot be combined with reaction"}
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return &Error{Field: "schedule", Reason: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err)}
		}
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	if _, _, err := cfg.Bounds(); err != nil {
		return err
	}
	return nil
}

// Load reads the optional config file, expands environment variables, applies
// opts, fills defaults (including credentials from the environment) and
// validates the result. An empty path skips the file.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseDate interprets a YYYY-MM-DD date as midnight in JST.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, JST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Bounds returns the history window. A zero time means the bound is open.
func (c *Config) Bounds() (oldest, newest time.Time, err error) {
	if c.Oldest != "" {
		if oldest, err = ParseDate(c.Oldest); err != nil {
			return time.Time{}, time.Time{}, &Error{Field: "oldest", Reason: err.Error()}
		}
	}
	if c.Newest != "" {
		if newest, err = ParseDate(c.Newest); err != nil {
			return time.Time{}, time.Time{}, &Error{Field: "newest", Reason: err.Error()}
		}
	}
	if !oldest.IsZero() && !newest.IsZero() && newest.Before(oldest) {
		return time.Time{}, time.Time{}, &Error{Field: "newest", Reason: "is before oldest"}
	}
	return oldest, newest, nil
}

// Location returns the zone message times are displayed in. An empty
// timezone means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &Error{Field: "timezone", Reason: err.Error()}
	}
	return loc, nil
}
