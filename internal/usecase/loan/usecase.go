package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"creditpath-backend/internal/domain/borrower"
	"creditpath-backend/internal/domain/errs"
	domain "creditpath-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsCache is an optional read-through cache for the dashboard aggregate.
type StatsCache interface {
	Get(ctx context.Context) (*domain.Stats, bool, error)
	Set(ctx context.Context, s *domain.Stats) error
}

type Usecase struct {
	loans     domain.Repository
	borrowers borrower.Repository
	cache     StatsCache
	log       *slog.Logger
}

func NewUsecase(loans domain.Repository, borrowers borrower.Repository) *Usecase {
	return &Usecase{loans: loans, borrowers: borrowers, log: slog.Default()}
}

func (u *Usecase) WithCache(c StatsCache) *Usecase { u.cache = c; return u }

func (u *Usecase) WithLogger(l *slog.Logger) *Usecase { u.log = l; return u }

func (u *Usecase) Get(ctx context.Context, id uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loan %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	b, err := u.borrowers.GetByID(ctx, l.BorrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("borrower %d of loan %d: %w", l.BorrowerID, id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &LoanDTO{ID: l.ID, Amount: l.Amount, Status: l.Status, BorrowerName: b.FullName}, nil
}

func (u *Usecase) DashboardStats(ctx context.Context) (*domain.Stats, error) {
	if u.cache != nil {
		s, ok, err := u.cache.Get(ctx)
		switch {
		case err != nil:
			u.log.Warn("loan: stats cache read failed", "err", err)
		case ok:
			return s, nil
		}
	}

	s, err := u.computeStats(ctx)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, s); err != nil {
			u.log.Warn("loan: stats cache write failed", "err", err)
		}
	}
	return s, nil
}

func (u *Usecase) computeStats(ctx context.Context) (*domain.Stats, error) {
	total, err := u.loans.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	amounts, err := u.loans.Amounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum loan amounts: %w", err)
	}
	byStatus, err := u.loans.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	volume := decimal.Zero
	for _, a := range amounts {
		volume = volume.Add(decimal.NewFromFloat(a))
	}
	dist := make(map[string]int64, len(byStatus))
	for _, sc := range byStatus {
		dist[string(sc.Status)] = sc.Count
	}
	return &domain.Stats{
		TotalLoans:         total,
		TotalVolume:        volume.InexactFloat64(),
		StatusDistribution: dist,
	}, nil
}

// ListBorrowers pages loans joined with their borrowers, ordered by loan id.
// A zero Limit means DefaultLimit; larger limits are capped at MaxLimit.
func (u *Usecase) ListBorrowers(ctx context.Context, p Page) ([]BorrowerSummary, error) {
	if p.Skip < 0 {
		return nil, fmt.Errorf("skip must be >= 0: %w", errs.ErrValidation)
	}
	if p.Limit < 0 {
		return nil, fmt.Errorf("limit must be >= 0: %w", errs.ErrValidation)
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	rows, err := u.loans.ListWithBorrowers(ctx, p.Skip, p.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]BorrowerSummary, 0, len(rows))
	for _, r := range rows {
		seg := SegmentPending
		if r.RiskSegment != nil {
			seg = *r.RiskSegment
		}
		out = append(out, BorrowerSummary{
			ID:          r.BorrowerID,
			LoanID:      r.LoanID,
			Name:        r.FullName,
			LoanAmount:  r.Amount,
			Status:      r.Status,
			CreditScore: r.CreditScore,
			RiskSegment: seg,
		})
	}
	return out, nil
}
