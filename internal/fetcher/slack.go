package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

const historyMethod = "conversations.history"

// SlackFetcher reads channel history with a user (OAuth) token.
type SlackFetcher struct {
	api *slack.Client
}

// NewSlackFetcher creates a fetcher. An empty apiURL uses the public Slack API.
func NewSlackFetcher(token, apiURL string) *SlackFetcher {
	opts := []slack.Option{slack.OptionHTTPClient(&http.Client{Timeout: 30 * time.Second})}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &SlackFetcher{api: slack.New(token, opts...)}
}

func (f *SlackFetcher) Fetch(ctx context.Context, q Query) ([]Message, error) {
	params := &slack.GetConversationHistoryParameters{
		ChannelID: q.Channel,
		Limit:     q.Limit,
		Oldest:    epoch(q.Oldest),
		Latest:    epoch(q.Newest),
		Inclusive: true,
	}

	resp, err := f.api.GetConversationHistoryContext(ctx, params)
	if err != nil {
		return nil, &APIError{Method: historyMethod, Err: err}
	}
	if !resp.Ok {
		return nil, &APIError{Method: historyMethod, Err: fmt.Errorf("%s", resp.Error)}
	}

	// Slack returns newest first.
	messages := make([]Message, 0, len(resp.Messages))
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		m, err := decodeMessage(resp.Messages[i])
		if err != nil {
			return nil, &APIError{Method: historyMethod, Err: err}
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func decodeMessage(sm slack.Message) (Message, error) {
	ts, err := ParseTimestamp(sm.Timestamp)
	if err != nil {
		return Message{}, err
	}

	var reactions []string
	for _, r := range sm.Reactions {
		reactions = append(reactions, r.Name)
	}

	return Message{
		UserID:    sm.User,
		Text:      sm.Text,
		Timestamp: sm.Timestamp,
		Time:      ts,
		Type:      sm.Type,
		SubType:   sm.SubType,
		BotID:     sm.BotID,
		Pinned:    len(sm.PinnedTo) > 0,
		Reactions: reactions,
	}, nil
}
