// Package risk maps a default probability onto a risk segment and the
// collection actions suggested for it.
package risk

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"creditpath-backend/internal/domain/errs"
)

type Segment string

const (
	SegmentLow    Segment = "Low Risk"
	SegmentMedium Segment = "Medium Risk"
	SegmentHigh   Segment = "High Risk"
)

// Lower bounds are inclusive: a probability equal to a threshold belongs to
// the higher-risk bucket.
const (
	MediumThreshold = 0.20
	HighThreshold   = 0.60
)

// Level orders segments by severity (Low=1, Medium=2, High=3).
func (s Segment) Level() int {
	switch s {
	case SegmentLow:
		return 1
	case SegmentMedium:
		return 2
	case SegmentHigh:
		return 3
	}
	return 0
}

var defaultCatalog = map[Segment][]string{
	SegmentLow: {
		"Send gentle SMS reminder",
		"Automated email nudge",
		"Offer loyalty discount for early payment",
	},
	SegmentMedium: {
		"Offer flexible repayment plan",
		"SMS/Email Warning",
		"Schedule automated robo-call",
	},
	SegmentHigh: {
		"Assign to recovery agent",
		"Offer significant settlement waiver",
		"Legal notice preparation",
	},
}

type Recommendation struct {
	RiskSegment        Segment  `json:"risk_segment"`
	RecommendedActions []string `json:"recommended_actions"`
	DefaultProbability float64  `json:"default_probability"`
}

// Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	catalog map[Segment][]string
}

func NewEngine() *Engine { return &Engine{catalog: defaultCatalog} }

// ValidateProbability rejects anything outside [0, 1], NaN and Inf included.
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return fmt.Errorf("default_probability %v outside [0,1]: %w", p, errs.ErrValidation)
	}
	return nil
}

func (e *Engine) Segment(p float64) (Segment, error) {
	if err := ValidateProbability(p); err != nil {
		return "", err
	}
	return segmentOf(p), nil
}

func segmentOf(p float64) Segment {
	switch {
	case p < MediumThreshold:
		return SegmentLow
	case p < HighThreshold:
		return SegmentMedium
	default:
		return SegmentHigh
	}
}

func (e *Engine) Actions(s Segment) []string {
	src := e.catalog[s]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (e *Engine) Recommend(p float64) (Recommendation, error) {
	seg, err := e.Segment(p)
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{
		RiskSegment:        seg,
		RecommendedActions: e.Actions(seg),
		DefaultProbability: Round(p, 4),
	}, nil
}

// Round rounds half away from zero at the given number of decimal places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
