package classifiermock

import (
	"context"
	"sync"
)

// Classifier returns a fixed probability (or error) and records every
// vector it was asked to score.
type Classifier struct {
	Proba float64
	Err   error
	Fn    func(ctx context.Context, x []float64) (float64, error)

	mu    sync.Mutex
	calls [][]float64
}

func Fixed(p float64) *Classifier { return &Classifier{Proba: p} }

func (c *Classifier) PredictProba(ctx context.Context, x []float64) (float64, error) {
	c.mu.Lock()
	c.calls = append(c.calls, append([]float64(nil), x...))
	c.mu.Unlock()
	if c.Fn != nil {
		return c.Fn(ctx, x)
	}
	return c.Proba, c.Err
}

func (c *Classifier) Calls() [][]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]float64(nil), c.calls...)
}
