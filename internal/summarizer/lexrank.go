package summarizer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LexRankSummarizer ranks sentences by eigenvector centrality over a
// thresholded tf-idf cosine similarity graph.
type LexRankSummarizer struct {
	tok       WordTokenizer
	threshold float64
	epsilon   float64
}

func NewLexRankSummarizer(tok WordTokenizer) *LexRankSummarizer {
	return &LexRankSummarizer{
		tok:       tok,
		threshold: 0.1,
		epsilon:   0.1,
	}
}

func (s *LexRankSummarizer) Summarize(document string, count int) []string {
	sentences := ParseDocument(document)
	if len(sentences) == 0 {
		return nil
	}
	words := wordsOf(s.tok, sentences)
	return bestSentences(sentences, s.rate(words), count)
}

func (s *LexRankSummarizer) rate(words [][]string) []float64 {
	tf := termFrequencies(words)
	idf := inverseDocumentFrequencies(words)

	n := len(words)
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		degree := 0.0
		for j := 0; j < n; j++ {
			if cosineSimilarity(tf[i], tf[j], idf) > s.threshold {
				m.Set(i, j, 1)
				degree++
			}
		}
		if degree == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			m.Set(i, j, m.At(i, j)/degree)
		}
	}

	return powerMethod(m, s.epsilon)
}

// termFrequencies normalizes each sentence's counts by its most frequent term.
func termFrequencies(words [][]string) []map[string]float64 {
	out := make([]map[string]float64, len(words))
	for i, ws := range words {
		counts := make(map[string]float64, len(ws))
		maxCount := 1.0
		for _, w := range ws {
			counts[w]++
			if counts[w] > maxCount {
				maxCount = counts[w]
			}
		}
		for w := range counts {
			counts[w] /= maxCount
		}
		out[i] = counts
	}
	return out
}

// inverseDocumentFrequencies computes log(N / (1 + df)) per term.
func inverseDocumentFrequencies(words [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, ws := range words {
		seen := make(map[string]bool, len(ws))
		for _, w := range ws {
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}
	n := float64(len(words))
	idf := make(map[string]float64, len(df))
	for w, d := range df {
		idf[w] = math.Log(n / float64(1+d))
	}
	return idf
}

func cosineSimilarity(tf1, tf2 map[string]float64, idf map[string]float64) float64 {
	var numerator, d1, d2 float64
	for w, f1 := range tf1 {
		if f2, ok := tf2[w]; ok {
			numerator += f1 * f2 * idf[w] * idf[w]
		}
		d1 += (f1 * idf[w]) * (f1 * idf[w])
	}
	for w, f2 := range tf2 {
		d2 += (f2 * idf[w]) * (f2 * idf[w])
	}
	if d1 > 0 && d2 > 0 {
		return numerator / (math.Sqrt(d1) * math.Sqrt(d2))
	}
	return 0
}
