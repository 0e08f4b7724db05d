package borrower

import "context"

type Repository interface {
	CreateBatch(ctx context.Context, bs []Borrower) error
	GetByID(ctx context.Context, id uint64) (*Borrower, error)
	// All borrowers keyed by id, for batch joins.
	ListAll(ctx context.Context) ([]Borrower, error)
	ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]struct{}, error)
}
