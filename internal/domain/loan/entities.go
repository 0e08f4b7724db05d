package loan

import (
	"fmt"
	"strings"
	"time"

	"creditpath-backend/internal/domain/errs"
)

type Status string

const (
	StatusCurrent    Status = "Current"
	StatusFullyPaid  Status = "Fully Paid"
	StatusChargedOff Status = "Charged Off"
	StatusLate       Status = "Late"
)

// Valid accepts the four canonical labels plus the long Late form
// ("Late (31-120 days)") found in source extracts.
func (s Status) Valid() bool {
	switch s {
	case StatusCurrent, StatusFullyPaid, StatusChargedOff, StatusLate:
		return true
	}
	return s.isLate()
}

func (s Status) isLate() bool { return strings.HasPrefix(string(s), string(StatusLate)) }

// Defaulted is the training label rule: Charged Off or any Late variant.
func (s Status) Defaulted() bool { return s == StatusChargedOff || s.isLate() }

// Table: loans. Read-only snapshot from the core's point of view.
type Loan struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	BorrowerID   uint64    `gorm:"column:borrower_id;not null;index:idx_loans_borrower" json:"borrower_id"`
	Amount       float64   `gorm:"column:amount" json:"amount"`
	TermMonths   int       `gorm:"column:term_months" json:"term_months"`
	InterestRate float64   `gorm:"column:interest_rate" json:"interest_rate"`
	Installment  float64   `gorm:"column:installment" json:"installment"`
	Grade        string    `gorm:"column:grade;size:8" json:"grade"`
	IssueDate    time.Time `gorm:"column:issue_date" json:"issue_date"`
	Status       Status    `gorm:"column:loan_status;size:32;index:idx_loans_status" json:"loan_status"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) Validate() error {
	switch {
	case l.ID == 0:
		return fmt.Errorf("loan id is required: %w", errs.ErrValidation)
	case l.BorrowerID == 0:
		return fmt.Errorf("loan %d: borrower_id is required: %w", l.ID, errs.ErrValidation)
	case l.Amount <= 0:
		return fmt.Errorf("loan %d: amount must be > 0: %w", l.ID, errs.ErrValidation)
	case l.TermMonths <= 0:
		return fmt.Errorf("loan %d: term_months must be > 0: %w", l.ID, errs.ErrValidation)
	case l.InterestRate < 0 || l.InterestRate > 1:
		return fmt.Errorf("loan %d: interest_rate %v outside [0,1]: %w", l.ID, l.InterestRate, errs.ErrValidation)
	case l.IssueDate.IsZero():
		return fmt.Errorf("loan %d: issue_date is required: %w", l.ID, errs.ErrValidation)
	case !l.Status.Valid():
		return fmt.Errorf("loan %d: unknown loan_status %q: %w", l.ID, l.Status, errs.ErrValidation)
	}
	return nil
}

// Stats is the dashboard aggregate over all loans.
type Stats struct {
	TotalLoans         int64            `json:"total_loans"`
	TotalVolume        float64          `json:"total_volume"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
}

// StatusCount is one row of the status group-by.
type StatusCount struct {
	Status Status
	Count  int64
}

// BorrowerLoanRow is a loan joined with its borrower and, when present, the
// stored feature row's segment.
type BorrowerLoanRow struct {
	LoanID      uint64
	BorrowerID  uint64
	FullName    string
	CreditScore int
	Amount      float64
	Status      Status
	RiskSegment *string
}
