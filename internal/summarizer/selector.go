package summarizer

import (
	"strings"

	"github.com/ryosukesatoh/slack-summary/internal/transcript"
)

// Selector runs a Summarizer over segmented sentences and maps the chosen
// texts back to the sentences they came from.
type Selector struct {
	summarizer Summarizer
}

func NewSelector(s Summarizer) *Selector {
	return &Selector{summarizer: s}
}

// Select returns at most count sentences in the summarizer's output order.
//
// Each picked text is attributed to the first sentence with identical text,
// so a repeated sentence is always credited to its earliest source message.
func (s *Selector) Select(sentences []transcript.Sentence, count int) []transcript.Sentence {
	if len(sentences) == 0 || count <= 0 {
		return nil
	}

	first := make(map[string]int, len(sentences))
	for i, sent := range sentences {
		if _, ok := first[sent.Text]; !ok {
			first[sent.Text] = i
		}
	}

	document := strings.Join(transcript.Texts(sentences), "")
	picked := s.summarizer.Summarize(document, count)

	limit := count
	if len(sentences) < limit {
		limit = len(sentences)
	}

	var selection []transcript.Sentence
	for _, text := range picked {
		if len(selection) == limit {
			break
		}
		idx, ok := first[text]
		if !ok {
			continue
		}
		selection = append(selection, sentences[idx])
	}
	return selection
}
