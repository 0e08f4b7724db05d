package features

import (
	"time"

	"creditpath-backend/internal/domain/borrower"
	featuresDomain "creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/loan"
)

type RebuildResult struct {
	RunID      string        `json:"run_id"`
	Loans      int           `json:"loans"`
	Features   int           `json:"features"`
	Duration   time.Duration `json:"duration"`
	ExportPath string        `json:"export_path,omitempty"`
}

// TrainingRow is one exported line: the loan joined with its borrower and
// computed features.
type TrainingRow struct {
	Loan     loan.Loan
	Borrower borrower.Borrower
	Features featuresDomain.LoanFeatures
}
