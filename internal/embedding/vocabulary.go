package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// GloveVocabulary is a word embedding vocabulary loaded from a GloVe
// text-format file ("word v1 v2 ... vN" per line). Token ids are the
// 1-based line positions: id 0 is reserved for the padding sentinel and
// never assigned to a word. Read-only after loading.
type GloveVocabulary struct {
	ids     map[string]int
	vectors [][]float64
	dim     int
}

// LoadGlove reads a GloVe text-format vocabulary from a file.
func LoadGlove(path string, logger *zap.Logger) (*GloveVocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding model: %w", err)
	}
	defer f.Close()

	v, err := ReadGlove(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding model %s: %w", path, err)
	}

	logger.Info("Loaded embedding vocabulary",
		zap.String("path", path),
		zap.Int("words", v.Size()),
		zap.Int("dim", v.Dim()))

	return v, nil
}

// ReadGlove parses GloVe text format from a reader. A leading "rows dims"
// header line is accepted and skipped.
func ReadGlove(r io.Reader) (*GloveVocabulary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	v := &GloveVocabulary{
		ids: make(map[string]int),
		// vectors[0] is the padding vector, filled in once dim is known.
		vectors: [][]float64{nil},
	}

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// Dimension header, as written by text-dims exporters.
		if line == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
		}

		word := fields[0]
		vec := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vector component %q: %w", line, field, err)
			}
			vec[i] = val
		}

		if v.dim == 0 {
			v.dim = len(vec)
		} else if len(vec) != v.dim {
			return nil, fmt.Errorf("line %d: vector has %d components, want %d", line, len(vec), v.dim)
		}

		if _, dup := v.ids[word]; dup {
			continue
		}

		v.vectors = append(v.vectors, vec)
		v.ids[word] = len(v.vectors) - 1
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if v.dim == 0 {
		return nil, fmt.Errorf("empty embedding model")
	}

	v.vectors[0] = make([]float64, v.dim)
	return v, nil
}

// ID returns the token id for a word, or false when unknown.
func (v *GloveVocabulary) ID(word string) (int, bool) {
	id, ok := v.ids[word]
	return id, ok
}

// Vector returns the embedding vector for a token id.
func (v *GloveVocabulary) Vector(id int) []float64 {
	if id < 0 || id >= len(v.vectors) {
		return nil
	}
	return v.vectors[id]
}

// Dim is the embedding vector length.
func (v *GloveVocabulary) Dim() int {
	return v.dim
}

// Size is the number of known words.
func (v *GloveVocabulary) Size() int {
	return len(v.vectors) - 1
}
