package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditpath-backend/internal/domain/errs"
)

func TestSegment_Boundaries(t *testing.T) {
	e := NewEngine()
	cases := map[float64]Segment{
		0:      SegmentLow,
		0.1999: SegmentLow,
		0.20:   SegmentMedium,
		0.5999: SegmentMedium,
		0.60:   SegmentHigh,
		1:      SegmentHigh,
	}
	for p, want := range cases {
		got, err := e.Segment(p)
		require.NoError(t, err, "p=%v", p)
		assert.Equal(t, want, got, "p=%v", p)
	}
}

func TestSegment_MonotonicOverUnitInterval(t *testing.T) {
	e := NewEngine()
	prev := 0
	for i := 0; i <= 10000; i++ {
		p := float64(i) / 10000
		s, err := e.Segment(p)
		require.NoError(t, err)
		if s.Level() < prev {
			t.Fatalf("segment level decreased at p=%v: %s", p, s)
		}
		prev = s.Level()
	}
}

func TestSegment_RejectsOutOfRange(t *testing.T) {
	e := NewEngine()
	for _, p := range []float64{-0.0001, 1.0001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := e.Segment(p)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("p=%v: expected ErrValidation, got %v", p, err)
		}
	}
}

func TestRecommend_NonEmptyActionsAndRounding(t *testing.T) {
	e := NewEngine()
	for _, p := range []float64{0, 0.05, 0.2, 0.45, 0.6, 0.99, 1} {
		rec, err := e.Recommend(p)
		require.NoError(t, err)
		assert.NotEmpty(t, rec.RecommendedActions, "p=%v", p)
	}

	rec, err := e.Recommend(0.123456)
	require.NoError(t, err)
	assert.Equal(t, 0.1235, rec.DefaultProbability)
	assert.Equal(t, SegmentLow, rec.RiskSegment)
}

func TestRecommend_HighRiskCatalog(t *testing.T) {
	rec, err := NewEngine().Recommend(0.7)
	require.NoError(t, err)
	assert.Equal(t, SegmentHigh, rec.RiskSegment)
	assert.Equal(t, []string{
		"Assign to recovery agent",
		"Offer significant settlement waiver",
		"Legal notice preparation",
	}, rec.RecommendedActions)
}

func TestRecommend_CatalogNotMutableThroughResult(t *testing.T) {
	e := NewEngine()
	rec, err := e.Recommend(0.1)
	require.NoError(t, err)
	rec.RecommendedActions[0] = "tampered"

	again, err := e.Recommend(0.1)
	require.NoError(t, err)
	assert.Equal(t, "Send gentle SMS reminder", again.RecommendedActions[0])
}

func TestRecommend_RejectsOutOfRange(t *testing.T) {
	_, err := NewEngine().Recommend(1.5)
	require.ErrorIs(t, err, errs.ErrValidation)
}
