package loanmock

import (
	"context"

	domain "creditpath-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-ops; reads default to context.Canceled so a test
// that forgets to stub a lookup fails loudly.
type Repo struct {
	CreateBatchFn       func(ctx context.Context, ls []domain.Loan) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListAllFn           func(ctx context.Context) ([]domain.Loan, error)
	ExistingIDsFn       func(ctx context.Context, ids []uint64) (map[uint64]struct{}, error)
	CountFn             func(ctx context.Context) (int64, error)
	AmountsFn           func(ctx context.Context) ([]float64, error)
	CountByStatusFn     func(ctx context.Context) ([]domain.StatusCount, error)
	ListWithBorrowersFn func(ctx context.Context, offset, limit int) ([]domain.BorrowerLoanRow, error)
}

func (m *Repo) CreateBatch(ctx context.Context, ls []domain.Loan) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ls)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]struct{}, error) {
	if m.ExistingIDsFn != nil {
		return m.ExistingIDsFn(ctx, ids)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}

func (m *Repo) Amounts(ctx context.Context) ([]float64, error) {
	if m.AmountsFn != nil {
		return m.AmountsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListWithBorrowers(ctx context.Context, offset, limit int) ([]domain.BorrowerLoanRow, error) {
	if m.ListWithBorrowersFn != nil {
		return m.ListWithBorrowersFn(ctx, offset, limit)
	}
	return nil, context.Canceled
}
