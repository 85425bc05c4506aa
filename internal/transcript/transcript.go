// Package transcript turns fetched channel history into the plain messages
// and sentences the summarizer works on.
package transcript

import (
	"strings"
	"time"

	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
)

// TimeLayout is the display format for message timestamps.
const TimeLayout = "2006-01-02 15:04"

// Terminal is appended to every sentence.
const Terminal = "。"

// Entry is a plain human message kept by Filter.
type Entry struct {
	Index  int
	UserID string
	Text   string
	Time   string
}

// Sentence is one segment of an Entry.
type Sentence struct {
	Text    string
	Speaker string
	Source  int // Entry.Index of the originating message
	Time    string
}

// Filter keeps plain messages: type "message", no subtype, not posted by a bot.
// Times are formatted in loc; a nil loc means time.Local.
func Filter(messages []fetcher.Message, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}
	entries := make([]Entry, 0, len(messages))
	for _, m := range messages {
		if m.Type != "message" || m.SubType != "" || m.BotID != "" {
			continue
		}
		entries = append(entries, Entry{
			Index:  len(entries),
			UserID: m.UserID,
			Text:   m.Text,
			Time:   FormatTime(m.Time, loc),
		})
	}
	return entries
}

// FormatTime renders t in loc with TimeLayout.
func FormatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

// Authors returns the author ids of entries in first-seen order, without duplicates.
func Authors(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	var ids []string
	for _, e := range entries {
		if seen[e.UserID] {
			continue
		}
		seen[e.UserID] = true
		ids = append(ids, e.UserID)
	}
	return ids
}

func isSentenceTerminal(r rune) bool {
	switch r {
	case '．', '。', '？', '！':
		return true
	}
	return false
}

// Fragments splits text into lines and then at Japanese sentence terminals,
// returning the trimmed, non-empty pieces without punctuation.
func Fragments(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		for _, frag := range strings.FieldsFunc(line, isSentenceTerminal) {
			frag = strings.TrimSpace(frag)
			if frag != "" {
				out = append(out, frag)
			}
		}
	}
	return out
}

// Split returns the sentences of text, each normalized to end in "。".
func Split(text string) []string {
	frags := Fragments(text)
	for i := range frags {
		frags[i] += Terminal
	}
	return frags
}

// Segment splits every entry into sentences, preserving entry order and the
// order of sentences within each entry.
func Segment(entries []Entry) []Sentence {
	var sentences []Sentence
	for _, e := range entries {
		for _, s := range Split(e.Text) {
			sentences = append(sentences, Sentence{
				Text:    s,
				Speaker: e.UserID,
				Source:  e.Index,
				Time:    e.Time,
			})
		}
	}
	return sentences
}

// Texts returns the text of each sentence.
func Texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

// splitLines breaks on the same boundaries as Unicode line splitting:
// \n, \r\n, \r, and the other vertical separators.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}
