package training

import (
	"fmt"
	"math"
	"strings"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"gonum.org/v1/gonum/stat"
)

// Metrics holds the regression-style error metrics computed against the
// continuous ground truth.
type Metrics struct {
	MSE  float64
	MAE  float64
	MAPE float64
	R2   float64
}

// ClassReport is the per-class breakdown of the discretized evaluation.
type ClassReport struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report combines continuous metrics with the three-way discretization.
type Report struct {
	Metrics   Metrics
	Accuracy  float64
	Confusion [3][3]int // [truth][predicted]
	Classes   map[core.SentimentClass]ClassReport
}

// mapeEpsilon guards the MAPE denominator for zero targets.
const mapeEpsilon = 1e-10

// Evaluate computes MSE, MAE, MAPE and R2 against the continuous truth,
// plus a confusion matrix and classification report against the
// discretized classes.
func Evaluate(truth, predicted []float64, thresholds core.Thresholds) (Report, error) {
	if len(truth) != len(predicted) {
		return Report{}, fmt.Errorf("truth and prediction length mismatch: %d vs %d", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return Report{}, fmt.Errorf("nothing to evaluate")
	}

	n := float64(len(truth))

	var sse, sae, sape float64
	for i := range truth {
		diff := truth[i] - predicted[i]
		sse += diff * diff
		sae += math.Abs(diff)
		sape += math.Abs(diff) / math.Max(math.Abs(truth[i]), mapeEpsilon)
	}

	mean := stat.Mean(truth, nil)
	var sst float64
	for _, y := range truth {
		sst += (y - mean) * (y - mean)
	}

	r2 := 1.0
	if sst > 0 {
		r2 = 1 - sse/sst
	} else if sse > 0 {
		r2 = 0
	}

	report := Report{
		Metrics: Metrics{
			MSE:  sse / n,
			MAE:  sae / n,
			MAPE: sape / n,
			R2:   r2,
		},
		Classes: make(map[core.SentimentClass]ClassReport),
	}

	correct := 0
	for i := range truth {
		t := thresholds.Classify(truth[i])
		p := thresholds.Classify(predicted[i])
		report.Confusion[t][p]++
		if t == p {
			correct++
		}
	}
	report.Accuracy = float64(correct) / n

	for _, class := range []core.SentimentClass{core.ClassNegative, core.ClassNeutral, core.ClassPositive} {
		tp := report.Confusion[class][class]
		var truthTotal, predTotal int
		for other := 0; other < 3; other++ {
			truthTotal += report.Confusion[class][other]
			predTotal += report.Confusion[other][class]
		}

		var cr ClassReport
		cr.Support = truthTotal
		if predTotal > 0 {
			cr.Precision = float64(tp) / float64(predTotal)
		}
		if truthTotal > 0 {
			cr.Recall = float64(tp) / float64(truthTotal)
		}
		if cr.Precision+cr.Recall > 0 {
			cr.F1 = 2 * cr.Precision * cr.Recall / (cr.Precision + cr.Recall)
		}
		report.Classes[class] = cr
	}

	return report, nil
}

// String renders the report in a classification-report layout.
func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "MSE:  %.6f\n", r.Metrics.MSE)
	fmt.Fprintf(&b, "MAE:  %.6f\n", r.Metrics.MAE)
	fmt.Fprintf(&b, "MAPE: %.6f\n", r.Metrics.MAPE)
	fmt.Fprintf(&b, "R2:   %.6f\n", r.Metrics.R2)
	fmt.Fprintf(&b, "Accuracy: %.4f\n\n", r.Accuracy)

	fmt.Fprintf(&b, "%-10s %9s %9s %9s %9s\n", "", "precision", "recall", "f1", "support")
	for _, class := range []core.SentimentClass{core.ClassNegative, core.ClassNeutral, core.ClassPositive} {
		cr := r.Classes[class]
		fmt.Fprintf(&b, "%-10s %9.4f %9.4f %9.4f %9d\n",
			class.String(), cr.Precision, cr.Recall, cr.F1, cr.Support)
	}

	return b.String()
}
