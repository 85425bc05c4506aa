package summarizer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	lsaMinDimensions = 3
	lsaSmooth        = 0.4
)

// LSASummarizer ranks sentences by their weight in the singular value
// decomposition of the term-sentence matrix.
type LSASummarizer struct {
	tok WordTokenizer
}

func NewLSASummarizer(tok WordTokenizer) *LSASummarizer {
	return &LSASummarizer{tok: tok}
}

func (s *LSASummarizer) Summarize(document string, count int) []string {
	sentences := ParseDocument(document)
	if len(sentences) == 0 {
		return nil
	}
	words := wordsOf(s.tok, sentences)

	dictionary := make(map[string]int)
	for _, ws := range words {
		for _, w := range ws {
			if _, ok := dictionary[w]; !ok {
				dictionary[w] = len(dictionary)
			}
		}
	}
	if len(dictionary) == 0 {
		return nil
	}

	ranks, ok := lsaRanks(termSentenceMatrix(words, dictionary))
	if !ok {
		return nil
	}
	return bestSentences(sentences, ranks, count)
}

// termSentenceMatrix counts terms per sentence and applies frequency
// smoothing column by column.
func termSentenceMatrix(words [][]string, dictionary map[string]int) *mat.Dense {
	rows, cols := len(dictionary), len(words)
	m := mat.NewDense(rows, cols, nil)
	for col, ws := range words {
		for _, w := range ws {
			row := dictionary[w]
			m.Set(row, col, m.At(row, col)+1)
		}
	}

	for col := 0; col < cols; col++ {
		maxFreq := mat.Max(m.ColView(col))
		if maxFreq == 0 {
			continue
		}
		for row := 0; row < rows; row++ {
			m.Set(row, col, lsaSmooth+(1-lsaSmooth)*m.At(row, col)/maxFreq)
		}
	}
	return m
}

func lsaRanks(m *mat.Dense) ([]float64, bool) {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDThin) {
		return nil, false
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	dimensions := len(sigma)
	if dimensions < lsaMinDimensions {
		dimensions = lsaMinDimensions
	}

	sentences, _ := v.Dims()
	ranks := make([]float64, sentences)
	for j := 0; j < sentences; j++ {
		var rank float64
		for i, s := range sigma {
			if i >= dimensions {
				break
			}
			vij := v.At(j, i)
			rank += s * s * vij * vij
		}
		ranks[j] = math.Sqrt(rank)
	}
	return ranks, true
}
