package features

import "context"

type Repository interface {
	// DeleteAll clears the table. Only meaningful inside a unit of work.
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, rows []LoanFeatures) error
	GetByLoanID(ctx context.Context, loanID uint64) (*LoanFeatures, error)
	Count(ctx context.Context) (int64, error)
}
