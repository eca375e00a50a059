package vader_test

import (
	"context"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/vader"
)

func TestAnalyzer_PolaritySign(t *testing.T) {
	analyzer := vader.NewAnalyzer()
	ctx := context.Background()

	positive, err := analyzer.Polarity(ctx, "This is wonderful, I love it!")
	if err != nil {
		t.Fatalf("Polarity failed: %v", err)
	}
	if positive <= 0 {
		t.Errorf("Expected positive polarity, got %f", positive)
	}

	negative, err := analyzer.Polarity(ctx, "This is terrible, I hate it.")
	if err != nil {
		t.Fatalf("Polarity failed: %v", err)
	}
	if negative >= 0 {
		t.Errorf("Expected negative polarity, got %f", negative)
	}
}

func TestAnalyzer_PolarityRange(t *testing.T) {
	analyzer := vader.NewAnalyzer()

	texts := []string{
		"",
		"neutral statement about the weather",
		"absolutely amazing fantastic wonderful",
		"horrible awful disgusting terrible",
	}
	for _, text := range texts {
		score, err := analyzer.Polarity(context.Background(), text)
		if err != nil {
			t.Fatalf("Polarity(%q) failed: %v", text, err)
		}
		if score < -1 || score > 1 {
			t.Errorf("Polarity(%q) = %f, outside [-1,1]", text, score)
		}
	}
}
