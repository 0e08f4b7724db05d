package loan

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, ls []Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]struct{}, error)

	// Dashboard aggregates
	Count(ctx context.Context) (int64, error)
	Amounts(ctx context.Context) ([]float64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// Ordered by loan id
	ListWithBorrowers(ctx context.Context, offset, limit int) ([]BorrowerLoanRow, error)
}
