package users

import (
	"context"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// ErrorName is substituted when a lookup fails.
const ErrorName = "Error"

// NameTable maps author ids to display names.
type NameTable map[string]string

// Name returns the resolved name for id, or id itself when it was never resolved.
func (t NameTable) Name(id string) string {
	if name, ok := t[id]; ok {
		return name
	}
	return id
}

// Profile is the subset of a user record that naming depends on.
type Profile struct {
	IsBot       bool
	RealName    string
	DisplayName string
	Username    string
}

// DisplayName applies the naming policy: bots are prefixed with "Bot-",
// humans use their display name and fall back to the username.
func DisplayName(p Profile) string {
	if p.IsBot {
		return "Bot-" + p.RealName
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// Lookup fetches one user profile.
type Lookup interface {
	Lookup(ctx context.Context, id string) (Profile, error)
}

// Resolver memoizes lookups for a single run.
type Resolver struct {
	lookup Lookup
	logger *zap.Logger
	names  NameTable
}

func NewResolver(lookup Lookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		lookup: lookup,
		logger: logger,
		names:  make(NameTable),
	}
}

// Resolve looks up every id not already known, one call per unique id, and
// returns the accumulated table. Failed lookups resolve to ErrorName.
func (r *Resolver) Resolve(ctx context.Context, ids []string) NameTable {
	for _, id := range ids {
		if _, ok := r.names[id]; ok {
			continue
		}
		p, err := r.lookup.Lookup(ctx, id)
		if err != nil {
			r.logger.Warn("User lookup failed",
				zap.String("user_id", id),
				zap.Error(err))
			r.names[id] = ErrorName
			continue
		}
		r.names[id] = DisplayName(p)
	}
	return r.names
}

// SlackLookup calls users.info with a bot token.
type SlackLookup struct {
	api *slack.Client
}

// NewSlackLookup creates a lookup. An empty apiURL uses the public Slack API.
func NewSlackLookup(token, apiURL string) *SlackLookup {
	opts := []slack.Option{slack.OptionHTTPClient(&http.Client{Timeout: 30 * time.Second})}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &SlackLookup{api: slack.New(token, opts...)}
}

func (l *SlackLookup) Lookup(ctx context.Context, id string) (Profile, error) {
	u, err := l.api.GetUserInfoContext(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		IsBot:       u.IsBot,
		RealName:    u.RealName,
		DisplayName: u.Profile.DisplayName,
		Username:    u.Name,
	}, nil
}
