// Package extproc drives the neural model through an external worker
// process speaking newline-delimited JSON over stdin/stdout. The worker
// owns the network itself; this side only ships batches and commands.
package extproc

import (
	"context"
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// Backend starts one worker process per model.
type Backend struct {
	command  string
	script   string
	modelDir string
	logger   *zap.Logger
}

// NewBackend configures the worker launch command. command is the
// interpreter (typically python3), script the worker entry point, and
// modelDir where saved models live.
func NewBackend(command, script, modelDir string, logger *zap.Logger) *Backend {
	return &Backend{
		command:  command,
		script:   script,
		modelDir: modelDir,
		logger:   logger,
	}
}

// Build starts a worker and asks it to construct a fresh model.
func (b *Backend) Build(ctx context.Context, spec core.ModelSpec) (core.SentimentModel, error) {
	w, err := b.startWorker(ctx)
	if err != nil {
		return nil, err
	}

	if err := w.call(ctx, request{
		Command: "build",
		Spec:    &spec,
	}, nil); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	return w, nil
}

// Load starts a worker and asks it to load a previously saved model.
func (b *Backend) Load(ctx context.Context, name string) (core.SentimentModel, error) {
	w, err := b.startWorker(ctx)
	if err != nil {
		return nil, err
	}

	if err := w.call(ctx, request{
		Command: "load",
		Name:    name,
	}, nil); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to load model %q: %w", name, err)
	}

	return w, nil
}
