package training_test

import (
	"reflect"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/training"
)

func TestSplitIndices_Sizes(t *testing.T) {
	train, val := training.SplitIndices(100, 0.05, 1)
	if len(val) != 5 {
		t.Errorf("Expected 5 validation indices, got %d", len(val))
	}
	if len(train) != 95 {
		t.Errorf("Expected 95 training indices, got %d", len(train))
	}

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), val...) {
		if seen[i] {
			t.Fatalf("Index %d assigned twice", i)
		}
		seen[i] = true
	}
	if len(seen) != 100 {
		t.Errorf("Expected every index assigned, got %d", len(seen))
	}
}

func TestSplitIndices_AtLeastOneValidation(t *testing.T) {
	_, val := training.SplitIndices(10, 0.01, 1)
	if len(val) != 1 {
		t.Errorf("Expected the validation set to be rounded up to 1, got %d", len(val))
	}
}

func TestSplitIndices_SeedReproducible(t *testing.T) {
	train1, val1 := training.SplitIndices(50, 0.1, 42)
	train2, val2 := training.SplitIndices(50, 0.1, 42)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(val1, val2) {
		t.Error("Same seed produced different splits")
	}

	_, val3 := training.SplitIndices(50, 0.1, 43)
	if reflect.DeepEqual(val1, val3) {
		t.Error("Different seeds produced identical validation sets")
	}
}

func TestSplitDataset_RowsStayAligned(t *testing.T) {
	ds := core.Dataset{
		Inputs:  [][]int{{10}, {20}, {30}, {40}},
		Targets: []float64{0.1, 0.2, 0.3, 0.4},
	}

	train, val := training.SplitDataset(ds, 0.25, 7)

	if len(val.Inputs) != 1 || len(train.Inputs) != 3 {
		t.Fatalf("Unexpected split sizes: train=%d val=%d", len(train.Inputs), len(val.Inputs))
	}

	check := func(d core.Dataset) {
		for i := range d.Inputs {
			if float64(d.Inputs[i][0])/100 != d.Targets[i] {
				t.Errorf("Row %d lost its target: input %v target %f", i, d.Inputs[i], d.Targets[i])
			}
		}
	}
	check(train)
	check(val)
}
