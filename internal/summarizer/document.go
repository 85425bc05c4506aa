package summarizer

import (
	"sort"
	"strings"

	"github.com/ryosukesatoh/slack-summary/internal/transcript"
)

// ParseDocument splits a document after every sentence terminal. The
// terminal stays attached to its sentence.
func ParseDocument(document string) []string {
	var sentences []string
	for document != "" {
		i := strings.Index(document, transcript.Terminal)
		if i < 0 {
			if s := strings.TrimSpace(document); s != "" {
				sentences = append(sentences, s)
			}
			break
		}
		end := i + len(transcript.Terminal)
		if s := strings.TrimSpace(document[:end]); s != transcript.Terminal {
			sentences = append(sentences, s)
		}
		document = document[end:]
	}
	return sentences
}

// bestSentences keeps the count highest-rated sentences and returns them in
// document order. Equal ratings keep document order.
func bestSentences(sentences []string, ratings []float64, count int) []string {
	if count > len(sentences) {
		count = len(sentences)
	}
	if count <= 0 {
		return nil
	}

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratings[order[a]] > ratings[order[b]]
	})

	top := order[:count]
	sort.Ints(top)

	out := make([]string, count)
	for i, idx := range top {
		out[i] = sentences[idx]
	}
	return out
}

// wordsOf tokenizes every sentence.
func wordsOf(tok WordTokenizer, sentences []string) [][]string {
	out := make([][]string, len(sentences))
	for i, s := range sentences {
		out[i] = tok.Words(s)
	}
	return out
}
