package classifiermock

import (
	"context"
	"errors"
	"testing"
)

func TestClassifier_FixedRecordsCalls(t *testing.T) {
	c := Fixed(0.42)
	x := []float64{1, 2, 3}
	p, err := c.PredictProba(context.Background(), x)
	if err != nil || p != 0.42 {
		t.Fatalf("PredictProba: got (%v, %v)", p, err)
	}
	x[0] = 99 // caller mutation must not leak into the record
	calls := c.Calls()
	if len(calls) != 1 || calls[0][0] != 1 {
		t.Fatalf("Calls: got %v", calls)
	}
}

func TestClassifier_FnOverridesFixed(t *testing.T) {
	sentinel := errors.New("boom")
	c := &Classifier{Proba: 0.1, Fn: func(context.Context, []float64) (float64, error) { return 0, sentinel }}
	if _, err := c.PredictProba(context.Background(), nil); !errors.Is(err, sentinel) {
		t.Fatalf("want %v, got %v", sentinel, err)
	}
}
