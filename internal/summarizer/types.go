package summarizer

import (
	"fmt"
)

// Strategy selects the sentence-ranking algorithm.
type Strategy int

const (
	LexRank  Strategy = 1
	TextRank Strategy = 2
	LSA      Strategy = 3
)

func (s Strategy) String() string {
	switch s {
	case LexRank:
		return "lexrank"
	case TextRank:
		return "textrank"
	case LSA:
		return "lsa"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps the numeric --type code to a Strategy.
func ParseStrategy(code int) (Strategy, error) {
	switch s := Strategy(code); s {
	case LexRank, TextRank, LSA:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedSummarizerType, code)
	}
}

// Summarizer picks the most salient sentences of a document.
type Summarizer interface {
	// Summarize returns at most count sentences of document, in document order.
	Summarize(document string, count int) []string
}

// WordTokenizer splits a sentence into the terms used for similarity.
type WordTokenizer interface {
	Words(sentence string) []string
}
