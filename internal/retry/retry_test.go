package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/retry"
)

func fastConfig() retry.Config {
	return retry.Config{
		MaxRetries:      3,
		BaseDelay:       time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffMultiple: 2.0,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	wantErr := errors.New("still broken")
	calls := 0

	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Expected the last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("Expected 1 attempt + 3 retries, got %d calls", calls)
	}
}

func TestDo_StopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := retry.Do(ctx, fastConfig(), func() error {
		calls++
		cancel()
		return errors.New("transient")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single call before cancellation, got %d", calls)
	}
}

func TestDo_NoRetryNeeded(t *testing.T) {
	calls := 0
	if err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single call, got %d", calls)
	}
}
