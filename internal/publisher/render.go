package publisher

import (
	"time"

	"github.com/ryosukesatoh/slack-summary/internal/fetcher"
	"github.com/ryosukesatoh/slack-summary/internal/transcript"
	"github.com/ryosukesatoh/slack-summary/internal/users"
)

// PinnedBlocks renders every pinned message in fetch order.
func PinnedBlocks(messages []fetcher.Message, names users.NameTable, loc *time.Location) []Block {
	return matchingBlocks(messages, IsPinned, names, loc)
}

// ReactionBlocks renders every message carrying a reaction named tag, in fetch order.
func ReactionBlocks(messages []fetcher.Message, tag string, names users.NameTable, loc *time.Location) []Block {
	return matchingBlocks(messages, HasReaction(tag), names, loc)
}

func matchingBlocks(messages []fetcher.Message, keep func(fetcher.Message) bool, names users.NameTable, loc *time.Location) []Block {
	var blocks []Block
	for _, m := range messages {
		if keep(m) {
			blocks = append(blocks, messageBlock(m, names, loc))
		}
	}
	return blocks
}

// SentenceBlocks renders each selected sentence with its speaker and time.
func SentenceBlocks(selection []transcript.Sentence, names users.NameTable) []Block {
	blocks := make([]Block, 0, len(selection))
	for _, s := range selection {
		blocks = append(blocks, Block{
			Author: names.Name(s.Speaker),
			Time:   s.Time,
			Text:   s.Text,
		})
	}
	return blocks
}

// MessageBlocks renders the full source message of each selected sentence,
// once per source message, ordered by first selection.
func MessageBlocks(selection []transcript.Sentence, entries []transcript.Entry, names users.NameTable) []Block {
	covered := make(map[int]bool, len(selection))
	var blocks []Block
	for _, s := range selection {
		if covered[s.Source] || s.Source < 0 || s.Source >= len(entries) {
			continue
		}
		covered[s.Source] = true
		e := entries[s.Source]
		blocks = append(blocks, Block{
			Author: names.Name(e.UserID),
			Time:   e.Time,
			Text:   e.Text,
		})
	}
	return blocks
}

// Authors returns the author ids of the messages PinnedBlocks or
// ReactionBlocks would print, so their names can be resolved first.
func Authors(messages []fetcher.Message, keep func(fetcher.Message) bool) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range messages {
		if !keep(m) || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		ids = append(ids, m.UserID)
	}
	return ids
}

// IsPinned matches the messages PinnedBlocks prints.
func IsPinned(m fetcher.Message) bool {
	return m.Type == "message" && m.Pinned
}

// HasReaction returns a matcher for the messages ReactionBlocks prints.
func HasReaction(tag string) func(fetcher.Message) bool {
	return func(m fetcher.Message) bool { return m.HasReaction(tag) }
}

func messageBlock(m fetcher.Message, names users.NameTable, loc *time.Location) Block {
	return Block{
		Author: names.Name(m.UserID),
		Time:   transcript.FormatTime(m.Time, loc),
		Text:   m.Text,
	}
}
