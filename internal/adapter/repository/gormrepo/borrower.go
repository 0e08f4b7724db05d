package gormrepo

import (
	"context"

	borrowerDomain "creditpath-backend/internal/domain/borrower"

	"gorm.io/gorm"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) CreateBatch(ctx context.Context, bs []borrowerDomain.Borrower) error {
	if len(bs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(bs, batchSize).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, id uint64) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) ListAll(ctx context.Context) ([]borrowerDomain.Borrower, error) {
	var out []borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, res.Error
}

func (r *BorrowerRepository) ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]struct{}, error) {
	return existingIDs(ctx, r.db, &borrowerDomain.Borrower{}, ids)
}
