package extproc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// request is one command line sent to the worker. Fields not used by a
// command are omitted.
type request struct {
	Command string          `json:"command"`
	Spec    *core.ModelSpec `json:"spec,omitempty"`
	Name    string          `json:"name,omitempty"`
	Train   *core.Dataset   `json:"train,omitempty"`
	Val     *core.Dataset   `json:"val,omitempty"`
	Inputs  [][]int         `json:"inputs,omitempty"`
}

// response is one reply line from the worker.
type response struct {
	Status  string             `json:"status"`
	Error   string             `json:"error,omitempty"`
	Metrics *core.EpochMetrics `json:"metrics,omitempty"`
	Scores  []float64          `json:"scores,omitempty"`
}

// worker wraps one running model process. Calls are serialized; the
// protocol is strictly one request line, one response line.
type worker struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
	rawOut io.ReadCloser
	mu     sync.Mutex
	logger *zap.Logger
}

const maxResponseLine = 16 * 1024 * 1024

func (b *Backend) startWorker(ctx context.Context) (*worker, error) {
	cmd := exec.Command(b.command, b.script, "--model-dir", b.modelDir)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("failed to start model worker: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), maxResponseLine)

	w := &worker{
		cmd:    cmd,
		stdin:  stdin,
		stdout: scanner,
		rawOut: stdout,
		logger: b.logger,
	}

	var ready response
	if err := w.read(&ready); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to read worker ready message: %w", err)
	}
	if ready.Status != "ready" {
		w.Close()
		return nil, fmt.Errorf("unexpected worker startup status: %s", ready.Status)
	}

	b.logger.Debug("Model worker started", zap.Int("pid", cmd.Process.Pid))

	return w, nil
}

// call sends one request and decodes the reply. out may be nil when the
// caller only cares about success.
func (w *worker) call(ctx context.Context, req request, out *response) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	line = append(line, '\n')
	if _, err := w.stdin.Write(line); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}

	var resp response
	if err := w.read(&resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("worker error: %s", resp.Error)
	}

	if out != nil {
		*out = resp
	}
	return nil
}

func (w *worker) read(out *response) error {
	if !w.stdout.Scan() {
		if err := w.stdout.Err(); err != nil {
			return fmt.Errorf("failed to read worker response: %w", err)
		}
		return fmt.Errorf("worker closed its stdout")
	}
	if err := json.Unmarshal(w.stdout.Bytes(), out); err != nil {
		return fmt.Errorf("failed to parse worker response: %w", err)
	}
	return nil
}

func (w *worker) TrainEpoch(ctx context.Context, train, val core.Dataset) (core.EpochMetrics, error) {
	var resp response
	err := w.call(ctx, request{
		Command: "train_epoch",
		Train:   &train,
		Val:     &val,
	}, &resp)
	if err != nil {
		return core.EpochMetrics{}, err
	}
	if resp.Metrics == nil {
		return core.EpochMetrics{}, fmt.Errorf("worker returned no epoch metrics")
	}
	return *resp.Metrics, nil
}

func (w *worker) Predict(ctx context.Context, inputs [][]int) ([]float64, error) {
	var resp response
	err := w.call(ctx, request{
		Command: "predict",
		Inputs:  inputs,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Scores) != len(inputs) {
		return nil, fmt.Errorf("worker returned %d scores for %d inputs", len(resp.Scores), len(inputs))
	}
	return resp.Scores, nil
}

func (w *worker) Snapshot(ctx context.Context) error {
	return w.call(ctx, request{Command: "snapshot"}, nil)
}

func (w *worker) Restore(ctx context.Context) error {
	return w.call(ctx, request{Command: "restore"}, nil)
}

func (w *worker) Save(ctx context.Context, name string) error {
	return w.call(ctx, request{Command: "save", Name: name}, nil)
}

func (w *worker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stdin != nil {
		w.stdin.Close()
	}
	if w.rawOut != nil {
		w.rawOut.Close()
	}
	if w.cmd != nil && w.cmd.Process != nil {
		w.cmd.Process.Kill()
		w.cmd.Wait()
	}
	return nil
}
