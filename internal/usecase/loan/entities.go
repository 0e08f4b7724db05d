package loan

import domain "creditpath-backend/internal/domain/loan"

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// Reported for loans the feature pipeline has not scored yet.
	SegmentPending = "Calculated on-demand"
)

type LoanDTO struct {
	ID           uint64        `json:"id"`
	Amount       float64       `json:"amount"`
	Status       domain.Status `json:"status"`
	BorrowerName string        `json:"borrower_name"`
}

type BorrowerSummary struct {
	ID          uint64        `json:"id"`
	LoanID      uint64        `json:"loan_id"`
	Name        string        `json:"name"`
	LoanAmount  float64       `json:"loan_amount"`
	Status      domain.Status `json:"status"`
	CreditScore int           `json:"credit_score"`
	RiskSegment string        `json:"risk_segment"`
}

type Page struct {
	Skip  int
	Limit int
}
