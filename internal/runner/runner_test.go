package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryosukesatoh/slack-summary/internal/config"
	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
	"github.com/ryosukesatoh/slack-summary/internal/publisher"
	"github.com/ryosukesatoh/slack-summary/internal/users"
)

var jst = time.FixedZone("JST", 9*60*60)

// Mock implementations

type mockFetcher struct {
	messages []fetcher.Message
	err      error
	query    fetcher.Query
}

func (m *mockFetcher) Fetch(_ context.Context, q fetcher.Query) ([]fetcher.Message, error) {
	m.query = q
	return m.messages, m.err
}

type mockLookup struct {
	profiles map[string]users.Profile
	calls    int
}

func (m *mockLookup) Lookup(_ context.Context, id string) (users.Profile, error) {
	m.calls++
	p, ok := m.profiles[id]
	if !ok {
		return users.Profile{}, errors.New("user_not_found")
	}
	return p, nil
}

type mockSummarizer struct {
	picked []string
	called bool
}

func (m *mockSummarizer) Summarize(_ string, _ int) []string {
	m.called = true
	return m.picked
}

type mockPublisher struct {
	blocks    []publisher.Block
	published bool
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, blocks []publisher.Block) error {
	m.published = true
	m.blocks = blocks
	return m.err
}

func sampleMessages() []fetcher.Message {
	return []fetcher.Message{
		{Type: "message", UserID: "U01", Text: "今日は晴れです。明日は雨でしょう！楽しみですね", Time: time.Unix(1584835200, 0)},
		{Type: "message", SubType: "channel_join", UserID: "U09", Text: "<@U09> has joined the channel", Time: time.Unix(1584836000, 0)},
		{Type: "message", UserID: "U02", Text: "資料を共有します。", Time: time.Unix(1584838800, 0), Pinned: true, Reactions: []string{"eyes"}},
		{Type: "message", BotID: "B01", UserID: "UBOT", Text: "定例は十時から", Time: time.Unix(1584842400, 0), Pinned: true},
	}
}

func sampleLookup() *mockLookup {
	return &mockLookup{profiles: map[string]users.Profile{
		"U01":  {DisplayName: "hanako"},
		"U02":  {Username: "taro123"},
		"UBOT": {IsBot: true, RealName: "Reminder"},
	}}
}

func newRunner(t *testing.T, cfg *config.Config, f fetcher.Fetcher, l users.Lookup, s *mockSummarizer, pubs ...publisher.Publisher) *Runner {
	t.Helper()
	if cfg.Limit == 0 {
		cfg.Limit = 5
	}
	if cfg.Channel == "" {
		cfg.Channel = "C0123456789"
	}
	if cfg.PageLimit == 0 {
		cfg.PageLimit = 100
	}
	r, err := New(cfg, f, l, s, pubs, WithLocation(jst))
	require.NoError(t, err)
	return r
}

func TestRunFullMessageMode(t *testing.T) {
	pub := &mockPublisher{}
	sum := &mockSummarizer{picked: []string{"明日は雨でしょう。", "資料を共有します。", "今日は晴れです。"}}
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), sum, pub)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []publisher.Block{
		{Author: "hanako", Time: "2020-03-22 09:00", Text: "今日は晴れです。明日は雨でしょう！楽しみですね"},
		{Author: "taro123", Time: "2020-03-22 10:00", Text: "資料を共有します。"},
	}, pub.blocks)
}

func TestRunSentenceMode(t *testing.T) {
	pub := &mockPublisher{}
	sum := &mockSummarizer{picked: []string{"資料を共有します。", "楽しみですね。"}}
	r := newRunner(t, &config.Config{Sentence: true}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), sum, pub)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []publisher.Block{
		{Author: "taro123", Time: "2020-03-22 10:00", Text: "資料を共有します。"},
		{Author: "hanako", Time: "2020-03-22 09:00", Text: "楽しみですね。"},
	}, pub.blocks)
}

func TestRunPinnedModeSkipsSummarization(t *testing.T) {
	pub := &mockPublisher{}
	sum := &mockSummarizer{}
	r := newRunner(t, &config.Config{Pinned: true}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), sum, pub)

	require.NoError(t, r.Run(context.Background()))

	assert.False(t, sum.called)
	assert.Equal(t, []publisher.Block{
		{Author: "taro123", Time: "2020-03-22 10:00", Text: "資料を共有します。"},
		{Author: "Bot-Reminder", Time: "2020-03-22 11:00", Text: "定例は十時から"},
	}, pub.blocks)
}

func TestRunReactionMode(t *testing.T) {
	pub := &mockPublisher{}
	sum := &mockSummarizer{}
	r := newRunner(t, &config.Config{Reaction: "eyes"}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), sum, pub)

	require.NoError(t, r.Run(context.Background()))

	assert.False(t, sum.called)
	require.Len(t, pub.blocks, 1)
	assert.Equal(t, "資料を共有します。", pub.blocks[0].Text)
}

func TestRunPassesQuery(t *testing.T) {
	f := &mockFetcher{}
	cfg := &config.Config{Channel: "CABC", PageLimit: 50, Oldest: "2020-03-22", Newest: "2020-04-17"}
	r := newRunner(t, cfg, f, sampleLookup(), &mockSummarizer{}, &mockPublisher{})

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, "CABC", f.query.Channel)
	assert.Equal(t, 50, f.query.Limit)
	assert.Equal(t, int64(1584802800), f.query.Oldest.Unix())
	assert.Equal(t, int64(1587049200), f.query.Newest.Unix())
}

func TestRunResolvesEachAuthorOnce(t *testing.T) {
	msgs := []fetcher.Message{
		{Type: "message", UserID: "U01", Text: "一。", Time: time.Unix(1584835200, 0)},
		{Type: "message", UserID: "U01", Text: "二。", Time: time.Unix(1584835300, 0)},
		{Type: "message", UserID: "U02", Text: "三。", Time: time.Unix(1584835400, 0)},
	}
	lookup := sampleLookup()
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: msgs}, lookup, &mockSummarizer{}, &mockPublisher{})

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, lookup.calls)
}

func TestRunLookupFailureIsNonFatal(t *testing.T) {
	pub := &mockPublisher{}
	msgs := []fetcher.Message{{Type: "message", UserID: "UGONE", Text: "退職しました。", Time: time.Unix(1584835200, 0)}}
	sum := &mockSummarizer{picked: []string{"退職しました。"}}
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: msgs}, sampleLookup(), sum, pub)

	require.NoError(t, r.Run(context.Background()))
	require.Len(t, pub.blocks, 1)
	assert.Equal(t, users.ErrorName, pub.blocks[0].Author)
}

func TestRunFetchError(t *testing.T) {
	apiErr := &fetcher.APIError{Method: "conversations.history", Err: errors.New("not_authed")}
	pub := &mockPublisher{}
	r := newRunner(t, &config.Config{}, &mockFetcher{err: apiErr}, sampleLookup(), &mockSummarizer{}, pub)

	err := r.Run(context.Background())
	require.Error(t, err)

	var target *fetcher.APIError
	assert.True(t, errors.As(err, &target))
	assert.False(t, pub.published)
}

func TestRunPublishFailureDoesNotFail(t *testing.T) {
	failPub := &mockPublisher{err: errors.New("publish failed")}
	successPub := &mockPublisher{}
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), &mockSummarizer{}, failPub, successPub)

	require.NoError(t, r.Run(context.Background()))
	assert.True(t, failPub.published)
	assert.True(t, successPub.published)
}

func TestRunAllPublishersFail(t *testing.T) {
	failPub := &mockPublisher{err: errors.New("publish failed")}
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), &mockSummarizer{}, failPub)

	assert.Error(t, r.Run(context.Background()))
}

func TestRunWritesDigest(t *testing.T) {
	var buf bytes.Buffer
	sum := &mockSummarizer{picked: []string{"資料を共有します。"}}
	r := newRunner(t, &config.Config{}, &mockFetcher{messages: sampleMessages()}, sampleLookup(), sum, publisher.NewWriterPublisher(&buf))

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, "○taro123 2020-03-22 10:00\n資料を共有します。\n\n", buf.String())
}
