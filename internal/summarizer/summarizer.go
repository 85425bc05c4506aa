package summarizer

import (
	"errors"
	"fmt"

	"github.com/ryosukesatoh/slack-summary/internal/config"
)

// New creates a summarizer based on the configuration
func New(cfg *config.Config) (Summarizer, error) {
	strategy, err := ParseStrategy(cfg.Type)
	if err != nil {
		return nil, err
	}
	tok, err := NewKagomeTokenizer()
	if err != nil {
		return nil, fmt.Errorf("summarizer: %w", err)
	}
	return NewWithTokenizer(strategy, tok)
}

// NewWithTokenizer creates the summarizer for strategy using tok for word features.
func NewWithTokenizer(strategy Strategy, tok WordTokenizer) (Summarizer, error) {
	switch strategy {
	case LexRank:
		return NewLexRankSummarizer(tok), nil
	case TextRank:
		return NewTextRankSummarizer(tok), nil
	case LSA:
		return NewLSASummarizer(tok), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSummarizerType, int(strategy))
	}
}

// ErrUnsupportedSummarizerType is returned when an unsupported summarizer type is specified
var ErrUnsupportedSummarizerType = errors.New("unsupported summarizer type")
