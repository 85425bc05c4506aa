package summarizer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const zeroDivisionPrevention = 1e-7

// TextRankSummarizer ranks sentences with PageRank over a word-overlap graph.
type TextRankSummarizer struct {
	tok     WordTokenizer
	damping float64
	epsilon float64
}

func NewTextRankSummarizer(tok WordTokenizer) *TextRankSummarizer {
	return &TextRankSummarizer{
		tok:     tok,
		damping: 0.85,
		epsilon: 1e-4,
	}
}

func (s *TextRankSummarizer) Summarize(document string, count int) []string {
	sentences := ParseDocument(document)
	if len(sentences) == 0 {
		return nil
	}
	words := wordsOf(s.tok, sentences)
	return bestSentences(sentences, s.rate(words), count)
}

func (s *TextRankSummarizer) rate(words [][]string) []float64 {
	n := len(words)
	weights := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := edgeWeight(words[i], words[j])
			weights.Set(i, j, r)
			weights.Set(j, i, r)
		}
	}

	base := (1 - s.damping) / float64(n)
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		rowSum := mat.Sum(weights.RowView(i)) + zeroDivisionPrevention
		for j := 0; j < n; j++ {
			m.Set(i, j, base+s.damping*weights.At(i, j)/rowSum)
		}
	}

	return powerMethod(m, s.epsilon)
}

// edgeWeight counts occurrences of words1 inside words2, normalized by the
// log lengths of both sentences.
func edgeWeight(words1, words2 []string) float64 {
	counts := make(map[string]int, len(words2))
	for _, w := range words2 {
		counts[w]++
	}
	rank := 0
	for _, w := range words1 {
		rank += counts[w]
	}
	if rank == 0 {
		return 0
	}

	norm := math.Log(float64(len(words1))) + math.Log(float64(len(words2)))
	if math.Abs(norm) < 1e-9 {
		// Single-word sentences.
		return float64(rank)
	}
	return float64(rank) / norm
}
