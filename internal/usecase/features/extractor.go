package features

import (
	"math"
	"time"

	"creditpath-backend/internal/domain/borrower"
	featuresDomain "creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/domain/repayment"
	"creditpath-backend/internal/domain/risk"
)

const daysPerMonth = 30

// Compute derives the feature row for one loan as of now. It never fails:
// degenerate arithmetic (zero principal, NaN spread) collapses to 0.
//
// The borrower is accepted for the debt-to-income join, which has no source
// data yet; both bureau-style ratios are left unavailable (nil).
func Compute(l loan.Loan, rs []repayment.Repayment, _ *borrower.Borrower, now time.Time) featuresDomain.LoanFeatures {
	return featuresDomain.LoanFeatures{
		LoanID:                  l.ID,
		RepaymentVelocity:       risk.Round(RepaymentVelocity(l.Amount, rs), 4),
		CreditUtilizationRatio:  nil,
		DelinquencyFreq:         DelinquencyFreq(MonthsSinceIssue(l.IssueDate, now), len(rs)),
		DebtToIncomeRatio:       nil,
		PaymentConsistencyScore: risk.Round(PaymentConsistency(rs), 2),
		DefaultProbability:      DefaultLabel(l.Status),
		RiskSegment:             featuresDomain.SegmentUnknown,
		RecommendedAction:       featuresDomain.ActionNone,
		ComputedAt:              now.UTC(),
	}
}

// RepaymentVelocity is total paid over principal. Not clamped: overpayment
// yields values above 1.
func RepaymentVelocity(amount float64, rs []repayment.Repayment) float64 {
	if amount <= 0 {
		return 0
	}
	v := totalPaid(rs) / amount
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MonthsSinceIssue counts whole elapsed days and divides by 30.
func MonthsSinceIssue(issued, now time.Time) float64 {
	days := math.Floor(now.Sub(issued).Hours() / 24)
	return days / daysPerMonth
}

// DelinquencyFreq estimates missed monthly payments as elapsed whole months
// minus payments made. Only meaningful for active loans; closed loans keep
// accruing "missed" months after payoff.
func DelinquencyFreq(monthsSinceIssue float64, payments int) int {
	missed := int(math.Floor(monthsSinceIssue)) - payments
	if missed < 0 {
		return 0
	}
	return missed
}

// PaymentConsistency is the sample standard deviation (n-1) of payment
// amounts; 0 with fewer than two payments.
func PaymentConsistency(rs []repayment.Repayment) float64 {
	n := len(rs)
	if n < 2 {
		return 0
	}
	mean := totalPaid(rs) / float64(n)
	var ss float64
	for _, r := range rs {
		d := r.PaymentAmount - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(n-1))
	if math.IsNaN(sd) || math.IsInf(sd, 0) {
		return 0
	}
	return sd
}

// DefaultLabel is the training target, not a scored probability.
func DefaultLabel(s loan.Status) float64 {
	if s.Defaulted() {
		return 1
	}
	return 0
}

func totalPaid(rs []repayment.Repayment) float64 {
	var sum float64
	for _, r := range rs {
		sum += r.PaymentAmount
	}
	return sum
}
