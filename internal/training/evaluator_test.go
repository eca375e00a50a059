package training_test

import (
	"math"
	"strings"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/training"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluate_MetricsAndConfusion(t *testing.T) {
	truth := []float64{0.9, 0.5, 0.2, 0.7}
	predicted := []float64{0.8, 0.55, 0.3, 0.1}
	thresholds := core.Thresholds{Negative: 0.45, Neutral: 0.6}

	report, err := training.Evaluate(truth, predicted, thresholds)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !almostEqual(report.Metrics.MSE, 0.095625) {
		t.Errorf("MSE = %f, want 0.095625", report.Metrics.MSE)
	}
	if !almostEqual(report.Metrics.MAE, 0.2125) {
		t.Errorf("MAE = %f, want 0.2125", report.Metrics.MAE)
	}

	if !almostEqual(report.Accuracy, 0.75) {
		t.Errorf("Accuracy = %f, want 0.75", report.Accuracy)
	}

	// The 0.7/0.1 pair is a positive truth scored as negative.
	if report.Confusion[core.ClassPositive][core.ClassNegative] != 1 {
		t.Errorf("Expected one positive-as-negative, got %d",
			report.Confusion[core.ClassPositive][core.ClassNegative])
	}
	if report.Confusion[core.ClassPositive][core.ClassPositive] != 1 ||
		report.Confusion[core.ClassNeutral][core.ClassNeutral] != 1 ||
		report.Confusion[core.ClassNegative][core.ClassNegative] != 1 {
		t.Errorf("Unexpected confusion matrix: %v", report.Confusion)
	}

	if report.Classes[core.ClassPositive].Support != 2 {
		t.Errorf("Positive support = %d, want 2", report.Classes[core.ClassPositive].Support)
	}
	// Two rows predicted negative, one of them truly negative.
	if !almostEqual(report.Classes[core.ClassNegative].Precision, 0.5) {
		t.Errorf("Negative precision = %f, want 0.5", report.Classes[core.ClassNegative].Precision)
	}
	if !almostEqual(report.Classes[core.ClassNegative].Recall, 1.0) {
		t.Errorf("Negative recall = %f, want 1.0", report.Classes[core.ClassNegative].Recall)
	}
}

func TestEvaluate_PerfectPrediction(t *testing.T) {
	truth := []float64{0.1, 0.5, 0.9}

	report, err := training.Evaluate(truth, truth, core.Thresholds{Negative: 0.45, Neutral: 0.6})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.Metrics.MSE != 0 || report.Metrics.MAE != 0 {
		t.Errorf("Expected zero error, got MSE=%f MAE=%f", report.Metrics.MSE, report.Metrics.MAE)
	}
	if report.Accuracy != 1 {
		t.Errorf("Expected accuracy 1, got %f", report.Accuracy)
	}
	if report.Metrics.R2 != 1 {
		t.Errorf("Expected R2 1, got %f", report.Metrics.R2)
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	_, err := training.Evaluate([]float64{0.1}, []float64{0.1, 0.2}, core.Thresholds{})
	if err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestEvaluate_Empty(t *testing.T) {
	if _, err := training.Evaluate(nil, nil, core.Thresholds{}); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestReport_StringListsAllClasses(t *testing.T) {
	report, err := training.Evaluate(
		[]float64{0.1, 0.5, 0.9},
		[]float64{0.2, 0.5, 0.8},
		core.Thresholds{Negative: 0.45, Neutral: 0.6},
	)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	out := report.String()
	for _, class := range []string{"negative", "neutral", "positive"} {
		if !strings.Contains(out, class) {
			t.Errorf("Report output missing class %q:\n%s", class, out)
		}
	}
}
