package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"creditpath-backend/internal/domain/errs"
	"creditpath-backend/internal/domain/risk"
)

// Classifier is the trained model: probability of default for a vector in
// FeatureNames order.
type Classifier interface {
	PredictProba(ctx context.Context, x []float64) (float64, error)
}

type SegmentObserver interface {
	ObserveSegment(segment string)
}

type Usecase struct {
	clf      Classifier
	engine   *risk.Engine
	observer SegmentObserver
	log      *slog.Logger
}

// NewUsecase accepts a nil classifier; Predict then reports
// errs.ErrModelUnavailable while Recommend keeps working.
func NewUsecase(clf Classifier, engine *risk.Engine) *Usecase {
	if engine == nil {
		engine = risk.NewEngine()
	}
	return &Usecase{clf: clf, engine: engine, log: slog.Default()}
}

func (u *Usecase) WithObserver(o SegmentObserver) *Usecase { u.observer = o; return u }

func (u *Usecase) WithLogger(l *slog.Logger) *Usecase { u.log = l; return u }

func (u *Usecase) ModelLoaded() bool { return u.clf != nil }

func (u *Usecase) Predict(ctx context.Context, in PredictInput) (risk.Recommendation, error) {
	if u.clf == nil {
		return risk.Recommendation{}, fmt.Errorf("predict: %w", errs.ErrModelUnavailable)
	}
	if err := in.Validate(); err != nil {
		return risk.Recommendation{}, err
	}

	p, err := u.clf.PredictProba(ctx, in.Vector().Values())
	if err != nil {
		u.log.Error("scoring: classifier failed", "err", err)
		return risk.Recommendation{}, fmt.Errorf("classifier: %w: %w", errs.ErrComputation, err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return risk.Recommendation{}, fmt.Errorf("classifier returned probability %v: %w", p, errs.ErrComputation)
	}

	rec, err := u.engine.Recommend(p)
	if err != nil {
		return risk.Recommendation{}, err
	}
	u.observe(rec)
	return rec, nil
}

func (u *Usecase) Recommend(_ context.Context, p float64) (risk.Recommendation, error) {
	rec, err := u.engine.Recommend(p)
	if err != nil {
		return risk.Recommendation{}, err
	}
	u.observe(rec)
	return rec, nil
}

func (u *Usecase) observe(rec risk.Recommendation) {
	if u.observer != nil {
		u.observer.ObserveSegment(string(rec.RiskSegment))
	}
}
