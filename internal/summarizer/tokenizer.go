package summarizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// KagomeTokenizer produces Japanese word features with the IPA dictionary.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

func NewKagomeTokenizer() (*KagomeTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome: failed to create tokenizer: %w", err)
	}
	return &KagomeTokenizer{t: t}, nil
}

// Words returns lower-cased base forms, skipping symbols and tokens without letters.
func (k *KagomeTokenizer) Words(sentence string) []string {
	var words []string
	for _, tok := range k.t.Tokenize(sentence) {
		if pos := tok.POS(); len(pos) > 0 && pos[0] == "記号" {
			continue
		}
		w := tok.Surface
		if base, ok := tok.BaseForm(); ok && base != "" && base != "*" {
			w = base
		}
		if !hasLetter(w) {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return words
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
