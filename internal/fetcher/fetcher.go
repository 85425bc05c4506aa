package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ryosukesatoh/slack-summary/internal/config"
)

// Message is a channel message decoded from the history API.
type Message struct {
	UserID    string
	Text      string
	Timestamp string // raw Slack "ts", e.g. "1584835200.000200"
	Time      time.Time
	Type      string
	SubType   string
	BotID     string
	Pinned    bool
	Reactions []string
}

// HasReaction reports whether a reaction named tag is attached to m.
func (m Message) HasReaction(tag string) bool {
	for _, r := range m.Reactions {
		if r == tag {
			return true
		}
	}
	return false
}

// Query bounds a history request. Zero Oldest/Newest leave that side open.
type Query struct {
	Channel string
	Limit   int
	Oldest  time.Time
	Newest  time.Time
}

// Fetcher retrieves one page of channel history, oldest message first.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]Message, error)
}

// APIError is returned when the remote call does not report success.
type APIError struct {
	Method string
	Err    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Method, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// New creates the history fetcher for the configuration.
func New(cfg *config.Config) Fetcher {
	return NewSlackFetcher(cfg.Slack.OAuthToken, cfg.Slack.APIURL)
}

// QueryFromConfig builds the history query for a run.
func QueryFromConfig(cfg *config.Config) (Query, error) {
	oldest, newest, err := cfg.Bounds()
	if err != nil {
		return Query{}, err
	}
	return Query{
		Channel: cfg.Channel,
		Limit:   cfg.PageLimit,
		Oldest:  oldest,
		Newest:  newest,
	}, nil
}

// ParseTimestamp converts a Slack "ts" value into a time.
func ParseTimestamp(ts string) (time.Time, error) {
	secPart, fracPart, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	var nsec int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
		}
		for i := len(fracPart); i < 9; i++ {
			frac *= 10
		}
		nsec = frac
	}
	return time.Unix(sec, nsec), nil
}

func epoch(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
