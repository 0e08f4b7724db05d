package repayment

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, rs []Repayment) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)
	// Every repayment, ordered by loan then date; used by the batch extractor.
	ListAll(ctx context.Context) ([]Repayment, error)
}
