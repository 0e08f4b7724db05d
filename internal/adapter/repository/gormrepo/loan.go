package gormrepo

import (
	"context"

	"creditpath-backend/internal/domain/features"
	loanDomain "creditpath-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) CreateBatch(ctx context.Context, ls []loanDomain.Loan) error {
	if len(ls) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ls, batchSize).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ExistingIDs(ctx context.Context, ids []uint64) (map[uint64]struct{}, error) {
	return existingIDs(ctx, r.db, &loanDomain.Loan{}, ids)
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n)
	return n, res.Error
}

// Amounts returns every loan amount so the caller can sum without float drift.
func (r *LoanRepository) Amounts(ctx context.Context) ([]float64, error) {
	var out []float64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Order("id").Pluck("amount", &out)
	return out, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context) ([]loanDomain.StatusCount, error) {
	var out []loanDomain.StatusCount
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("loan_status AS status, COUNT(*) AS count").
		Group("loan_status").
		Order("loan_status").
		Scan(&out)
	return out, res.Error
}

func (r *LoanRepository) ListWithBorrowers(ctx context.Context, offset, limit int) ([]loanDomain.BorrowerLoanRow, error) {
	var out []loanDomain.BorrowerLoanRow
	res := r.db.WithContext(ctx).
		Table(loanDomain.Loan{}.TableName()+" AS l").
		Select(`l.id AS loan_id, b.id AS borrower_id, b.full_name AS full_name,
			b.credit_score AS credit_score, l.amount AS amount, l.loan_status AS status,
			CASE WHEN f.risk_segment IS NULL OR f.risk_segment = ? THEN NULL ELSE f.risk_segment END AS risk_segment`,
			features.SegmentUnknown).
		Joins("JOIN borrowers AS b ON b.id = l.borrower_id").
		Joins("LEFT JOIN "+features.LoanFeatures{}.TableName()+" AS f ON f.loan_id = l.id").
		Order("l.id").
		Offset(offset).
		Limit(limit).
		Scan(&out)
	return out, res.Error
}
