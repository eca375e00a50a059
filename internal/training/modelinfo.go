package training

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// ModelInfoPath is the canonical location of a corpus' model-info file
// inside the model directory.
func ModelInfoPath(dir, corpus string) string {
	return filepath.Join(dir, corpus+"_modelInfo.json")
}

// SaveModelInfo persists the canonical configuration written by the
// search engine and consumed by the trainer and the scoring pipeline.
func SaveModelInfo(dir, corpus string, info core.ModelInfo) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model info: %w", err)
	}

	if err := os.WriteFile(ModelInfoPath(dir, corpus), data, 0644); err != nil {
		return fmt.Errorf("failed to write model info: %w", err)
	}
	return nil
}

// LoadModelInfo reads a previously persisted configuration.
func LoadModelInfo(dir, corpus string) (core.ModelInfo, error) {
	data, err := os.ReadFile(ModelInfoPath(dir, corpus))
	if err != nil {
		return core.ModelInfo{}, fmt.Errorf("failed to read model info: %w", err)
	}

	var info core.ModelInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return core.ModelInfo{}, fmt.Errorf("failed to decode model info: %w", err)
	}
	return info, nil
}
