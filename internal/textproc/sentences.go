package textproc

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits cleaned text into sentences, the unit of synthesis and
// playback. Splitting per sentence keeps generation ahead of playback and
// bounds how much audio a stop command discards.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSegmenter creates a Segmenter backed by the english sentence tokenizer.
func NewSegmenter() (*Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence tokenizer: %w", err)
	}
	return &Segmenter{tokenizer: tokenizer}, nil
}

// Sentences splits text into trimmed sentences, dropping empties and bare
// punctuation.
func (s *Segmenter) Sentences(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(sent.Text)
		if t == "" || isBarePunctuation(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isBarePunctuation(s string) bool {
	for _, r := range s {
		switch r {
		case '.', ',', '!', '?', ';', ':', '-':
		default:
			return false
		}
	}
	return true
}
