package uow

import (
	"context"

	"creditpath-backend/internal/domain/borrower"
	"creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/domain/repayment"
)

// Repos are bound to the same transaction.
type Repos struct {
	Borrowers  borrower.Repository
	Loans      loan.Repository
	Repayments repayment.Repository
	Features   features.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
