package gormrepo

import (
	"context"

	"creditpath-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx binds every repository to one transaction; gorm rolls back when fn
// returns an error or panics.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ReposFor(tx))
	})
}

// ReposFor builds the repository set over db (plain handle or transaction).
func ReposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Borrowers:  &BorrowerRepository{db: db},
		Loans:      &LoanRepository{db: db},
		Repayments: &RepaymentRepository{db: db},
		Features:   &FeaturesRepository{db: db},
	}
}
