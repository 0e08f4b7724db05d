package borrower

import (
	"fmt"

	"creditpath-backend/internal/domain/errs"
)

type HomeOwnership string

const (
	HomeRent     HomeOwnership = "RENT"
	HomeOwn      HomeOwnership = "OWN"
	HomeMortgage HomeOwnership = "MORTGAGE"
)

func (h HomeOwnership) Valid() bool {
	switch h {
	case HomeRent, HomeOwn, HomeMortgage:
		return true
	}
	return false
}

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// Table: borrowers. Immutable after ingestion.
type Borrower struct {
	ID              uint64        `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	FullName        string        `gorm:"column:full_name;size:255;index" json:"full_name"`
	CreditScore     int           `gorm:"column:credit_score" json:"credit_score"`
	AnnualIncome    float64       `gorm:"column:annual_income" json:"annual_income"`
	EmploymentYears int           `gorm:"column:employment_years" json:"employment_years"`
	HomeOwnership   HomeOwnership `gorm:"column:home_ownership;size:16" json:"home_ownership"`
}

func (Borrower) TableName() string { return "borrowers" }

func (b *Borrower) Validate() error {
	switch {
	case b.ID == 0:
		return fmt.Errorf("borrower id is required: %w", errs.ErrValidation)
	case b.CreditScore < MinCreditScore || b.CreditScore > MaxCreditScore:
		return fmt.Errorf("borrower %d: credit_score %d outside %d-%d: %w", b.ID, b.CreditScore, MinCreditScore, MaxCreditScore, errs.ErrValidation)
	case b.AnnualIncome < 0:
		return fmt.Errorf("borrower %d: negative annual_income: %w", b.ID, errs.ErrValidation)
	case b.EmploymentYears < 0:
		return fmt.Errorf("borrower %d: negative employment_years: %w", b.ID, errs.ErrValidation)
	case !b.HomeOwnership.Valid():
		return fmt.Errorf("borrower %d: unknown home_ownership %q: %w", b.ID, b.HomeOwnership, errs.ErrValidation)
	}
	return nil
}
