package gormrepo

import (
	"context"

	featuresDomain "creditpath-backend/internal/domain/features"

	"gorm.io/gorm"
)

type FeaturesRepository struct{ db *gorm.DB }

func NewFeaturesRepository(db *gorm.DB) *FeaturesRepository { return &FeaturesRepository{db: db} }

func (r *FeaturesRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&featuresDomain.LoanFeatures{}).Error
}

func (r *FeaturesRepository) CreateBatch(ctx context.Context, rows []featuresDomain.LoanFeatures) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error
}

func (r *FeaturesRepository) GetByLoanID(ctx context.Context, loanID uint64) (*featuresDomain.LoanFeatures, error) {
	var out featuresDomain.LoanFeatures
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *FeaturesRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&featuresDomain.LoanFeatures{}).Count(&n)
	return n, res.Error
}
