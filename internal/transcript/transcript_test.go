package transcript

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
)

var jst = time.FixedZone("JST", 9*60*60)

func msg(user, text string, unix int64) fetcher.Message {
	return fetcher.Message{Type: "message", UserID: user, Text: text, Time: time.Unix(unix, 0)}
}

func TestFilterExcludesSubtypesAndBots(t *testing.T) {
	join := msg("U02", "<@U02> has joined the channel", 1584880100)
	join.SubType = "channel_join"
	bot := msg("B01", "リマインダーです。", 1584880200)
	bot.BotID = "B01"
	other := msg("U03", "ignored", 1584880300)
	other.Type = "event"

	raw := []fetcher.Message{
		msg("U01", "おはようございます。", 1584880000),
		join,
		bot,
		other,
		msg("U03", "よろしくお願いします。", 1584880400),
	}

	entries := Filter(raw, jst)

	excluded := 3
	require.Len(t, entries, len(raw)-excluded)
	assert.Equal(t, Entry{Index: 0, UserID: "U01", Text: "おはようございます。", Time: "2020-03-22 21:26"}, entries[0])
	assert.Equal(t, 1, entries[1].Index)
	assert.Equal(t, "U03", entries[1].UserID)
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2020, 3, 22, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "2020-03-22 09:05", FormatTime(ts, jst))
	assert.Equal(t, "2020-03-22 00:05", FormatTime(ts, time.UTC))
}

func TestAuthors(t *testing.T) {
	entries := []Entry{{UserID: "U02"}, {UserID: "U01"}, {UserID: "U02"}}
	assert.Equal(t, []string{"U02", "U01"}, Authors(entries))
}

func TestSplitScenario(t *testing.T) {
	got := Split("今日は晴れです。明日は雨でしょう！楽しみですね")
	assert.Equal(t, []string{"今日は晴れです。", "明日は雨でしょう。", "楽しみですね。"}, got)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no terminal", "  お疲れさまです  ", []string{"お疲れさまです。"}},
		{"full-width period and question", "資料は共有済み．確認できますか？", []string{"資料は共有済み。", "確認できますか。"}},
		{"lines", "一行目\n二行目です。\r\n\n三行目！", []string{"一行目。", "二行目です。", "三行目。"}},
		{"ideographic spaces trimmed", "　了解です　。", []string{"了解です。"}},
		{"only punctuation", "。。！？", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestSplitIdempotentOnNormalizedSentence(t *testing.T) {
	for _, s := range []string{"今日は晴れです。", "了解。", "ABC。"} {
		assert.Equal(t, []string{s}, Split(s))
	}
}

func TestSegmentMatchesFragments(t *testing.T) {
	texts := []string{
		"今日は晴れです。明日は雨でしょう！楽しみですね",
		"議題は二つ．\n一つ目はリリース？\n\n二つ目は採用",
		"。",
	}
	var entries []Entry
	for i, text := range texts {
		entries = append(entries, Entry{Index: i, UserID: "U01", Text: text})
	}

	sentences := Segment(entries)

	for i, text := range texts {
		var stripped []string
		for _, s := range sentences {
			if s.Source == i {
				stripped = append(stripped, strings.TrimSuffix(s.Text, Terminal))
			}
		}
		assert.Equal(t, Fragments(text), stripped, "entry %d", i)
	}
}

func TestSegmentBackReferences(t *testing.T) {
	entries := []Entry{
		{Index: 0, UserID: "U01", Text: "一。二。", Time: "2020-03-22 09:00"},
		{Index: 1, UserID: "U02", Text: "三", Time: "2020-03-22 10:00"},
	}

	got := Segment(entries)

	assert.Equal(t, []Sentence{
		{Text: "一。", Speaker: "U01", Source: 0, Time: "2020-03-22 09:00"},
		{Text: "二。", Speaker: "U01", Source: 0, Time: "2020-03-22 09:00"},
		{Text: "三。", Speaker: "U02", Source: 1, Time: "2020-03-22 10:00"},
	}, got)
	assert.Equal(t, []string{"一。", "二。", "三。"}, Texts(got))
}
