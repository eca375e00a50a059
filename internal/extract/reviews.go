package extract

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

const labelPrefix = "__label__"

// ReviewReader extracts records from a fastText-style review dump: one
// review per line, each prefixed with "__label__N". Files ending in .bz2
// are decompressed on the fly.
type ReviewReader struct {
	logger *zap.Logger
}

// NewReviewReader creates a new ReviewReader
func NewReviewReader(logger *zap.Logger) *ReviewReader {
	return &ReviewReader{logger: logger}
}

// ReadFile extracts records from a review dump. maxRecords <= 0 reads all.
func (r *ReviewReader) ReadFile(path string, maxRecords int) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		src = bzip2.NewReader(f)
	}

	return r.Read(src, maxRecords)
}

// Read extracts labelled records line by line. Lines without a valid
// label prefix are dropped.
func (r *ReviewReader) Read(src io.Reader, maxRecords int) ([]core.Record, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []core.Record
	dropped := 0
	for scanner.Scan() {
		if maxRecords > 0 && len(records) >= maxRecords {
			break
		}

		rec, ok := ParseReview(scanner.Text())
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	r.logger.Info("Extracted review records",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))

	return records, nil
}

// ParseReview parses one "__label__N review text" line. The raw label is
// stored unscaled; the corpus' ScaleLabel maps it onto [0,1].
func ParseReview(line string) (core.Record, bool) {
	label, rest, found := strings.Cut(line, " ")
	if !found || !strings.HasPrefix(label, labelPrefix) {
		return core.Record{}, false
	}

	raw, err := strconv.Atoi(strings.TrimPrefix(label, labelPrefix))
	if err != nil {
		return core.Record{}, false
	}

	return core.Record{
		Content:  rest,
		Label:    float64(raw),
		HasLabel: true,
	}, true
}
