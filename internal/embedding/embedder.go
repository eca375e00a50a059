package embedding

import (
	"strings"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// Embedder maps normalized text onto token-id sequences using a fixed
// vocabulary. Words missing from the vocabulary are dropped silently, so
// the output sequence can be shorter than the word count.
type Embedder struct {
	vocab core.Vocabulary
}

// NewEmbedder creates a new Embedder
func NewEmbedder(vocab core.Vocabulary) *Embedder {
	return &Embedder{vocab: vocab}
}

// Embed converts normalized text into a token-id sequence, preserving
// word order. An empty or all-unknown input yields an empty sequence.
func (e *Embedder) Embed(text string) []int {
	if text == "" {
		return nil
	}

	words := strings.Split(text, " ")
	seq := make([]int, 0, len(words))
	for _, word := range words {
		if id, ok := e.vocab.ID(word); ok {
			seq = append(seq, id)
		}
	}
	return seq
}

// EmbedAll embeds a batch of texts.
func (e *Embedder) EmbedAll(texts []string) [][]int {
	seqs := make([][]int, len(texts))
	for i, t := range texts {
		seqs[i] = e.Embed(t)
	}
	return seqs
}
