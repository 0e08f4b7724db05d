package features

import (
	"math"
	"testing"
	"time"

	"creditpath-backend/internal/domain/borrower"
	featuresDomain "creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/domain/repayment"

	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func payments(amounts ...float64) []repayment.Repayment {
	out := make([]repayment.Repayment, len(amounts))
	for i, a := range amounts {
		out[i] = repayment.Repayment{ID: uint64(i + 1), LoanID: 1, PaymentAmount: a}
	}
	return out
}

func TestRepaymentVelocity(t *testing.T) {
	assert.InDelta(t, 0.8, RepaymentVelocity(10_000, payments(3000, 5000)), 1e-12)
	// overpayment is not clamped
	assert.InDelta(t, 1.25, RepaymentVelocity(1000, payments(1250)), 1e-12)
	// zero or negative principal never divides
	assert.Equal(t, 0.0, RepaymentVelocity(0, payments(100, 200)))
	assert.Equal(t, 0.0, RepaymentVelocity(-5, payments(100)))
	assert.Equal(t, 0.0, RepaymentVelocity(1000, nil))
}

func TestMonthsSinceIssue(t *testing.T) {
	issued := refNow.AddDate(0, 0, -95)
	assert.InDelta(t, 95.0/30, MonthsSinceIssue(issued, refNow), 1e-12)

	// partial days are dropped
	assert.InDelta(t, 1.0, MonthsSinceIssue(refNow.Add(-30*24*time.Hour-23*time.Hour), refNow), 1e-12)
}

func TestDelinquencyFreq(t *testing.T) {
	assert.Equal(t, 2, DelinquencyFreq(5.9, 3))
	assert.Equal(t, 0, DelinquencyFreq(3.2, 3))
	assert.Equal(t, 0, DelinquencyFreq(1, 12))
	// issue date in the future
	assert.Equal(t, 0, DelinquencyFreq(-0.4, 0))
}

func TestPaymentConsistency(t *testing.T) {
	assert.Equal(t, 0.0, PaymentConsistency(nil))
	assert.Equal(t, 0.0, PaymentConsistency(payments(500)))
	// sample stddev of {2,4,4,4,5,5,7,9} = sqrt(32/7)
	assert.InDelta(t, math.Sqrt(32.0/7), PaymentConsistency(payments(2, 4, 4, 4, 5, 5, 7, 9)), 1e-12)
	assert.Equal(t, 0.0, PaymentConsistency(payments(100, 100, 100)))
	assert.Equal(t, 0.0, PaymentConsistency(payments(math.Inf(1), 1)))
}

func TestDefaultLabel(t *testing.T) {
	assert.Equal(t, 1.0, DefaultLabel(loan.StatusChargedOff))
	assert.Equal(t, 1.0, DefaultLabel(loan.StatusLate))
	assert.Equal(t, 1.0, DefaultLabel("Late (31-120 days)"))
	assert.Equal(t, 0.0, DefaultLabel(loan.StatusCurrent))
	assert.Equal(t, 0.0, DefaultLabel(loan.StatusFullyPaid))
}

func TestCompute(t *testing.T) {
	l := loan.Loan{
		ID:         7,
		BorrowerID: 3,
		Amount:     10_000,
		IssueDate:  refNow.AddDate(0, 0, -200), // 6.67 months
		Status:     loan.StatusLate,
	}
	b := &borrower.Borrower{ID: 3, AnnualIncome: 60_000}
	rs := payments(2000, 2000, 4000)

	f := Compute(l, rs, b, refNow)

	assert.Equal(t, uint64(7), f.LoanID)
	assert.Equal(t, 0.8, f.RepaymentVelocity)
	assert.Equal(t, 3, f.DelinquencyFreq)
	assert.InDelta(t, 1154.70, f.PaymentConsistencyScore, 1e-9)
	assert.Equal(t, 1.0, f.DefaultProbability)
	assert.Nil(t, f.CreditUtilizationRatio, "no bureau feed: must stay unavailable")
	assert.Nil(t, f.DebtToIncomeRatio, "no obligations join: must stay unavailable")
	assert.Equal(t, featuresDomain.SegmentUnknown, f.RiskSegment)
	assert.Equal(t, featuresDomain.ActionNone, f.RecommendedAction)
	assert.Equal(t, refNow, f.ComputedAt)
}

func TestCompute_ZeroAmountIgnoresHistory(t *testing.T) {
	l := loan.Loan{ID: 1, Amount: 0, IssueDate: refNow, Status: loan.StatusCurrent}
	f := Compute(l, payments(100, 900), nil, refNow)
	assert.Equal(t, 0.0, f.RepaymentVelocity)
	assert.Equal(t, 0, f.DelinquencyFreq)
}
