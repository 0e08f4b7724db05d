package repayment

import (
	"fmt"
	"time"

	"creditpath-backend/internal/domain/errs"
)

// Table: repayments. Append-only.
type Repayment struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	LoanID        uint64    `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"loan_id"`
	PaymentDate   time.Time `gorm:"column:payment_date" json:"payment_date"`
	PaymentAmount float64   `gorm:"column:payment_amount" json:"payment_amount"`
}

func (Repayment) TableName() string { return "repayments" }

func (r *Repayment) Validate() error {
	switch {
	case r.ID == 0:
		return fmt.Errorf("repayment id is required: %w", errs.ErrValidation)
	case r.LoanID == 0:
		return fmt.Errorf("repayment %d: loan_id is required: %w", r.ID, errs.ErrValidation)
	case r.PaymentAmount < 0:
		return fmt.Errorf("repayment %d: negative payment_amount: %w", r.ID, errs.ErrValidation)
	}
	return nil
}
