package scoring

import (
	"fmt"
	"math"
	"strings"

	"creditpath-backend/internal/domain/errs"
)

// FeatureNames is the column order the classifier was trained on.
var FeatureNames = []string{
	"repayment_velocity",
	"credit_utilization_ratio",
	"delinquency_freq",
	"payment_consistency_score",
	"amount",
	"interest_rate",
	"annual_income",
	"credit_score",
}

type FeatureVector struct {
	RepaymentVelocity       float64 `json:"repayment_velocity"`
	CreditUtilizationRatio  float64 `json:"credit_utilization_ratio"`
	DelinquencyFreq         float64 `json:"delinquency_freq"`
	PaymentConsistencyScore float64 `json:"payment_consistency_score"`
	Amount                  float64 `json:"amount"`
	InterestRate            float64 `json:"interest_rate"`
	AnnualIncome            float64 `json:"annual_income"`
	CreditScore             float64 `json:"credit_score"`
}

// Values returns the vector in FeatureNames order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.RepaymentVelocity,
		v.CreditUtilizationRatio,
		v.DelinquencyFreq,
		v.PaymentConsistencyScore,
		v.Amount,
		v.InterestRate,
		v.AnnualIncome,
		v.CreditScore,
	}
}

// PredictInput is the caller-supplied vector; nil means the field was absent.
type PredictInput struct {
	RepaymentVelocity       *float64
	CreditUtilizationRatio  *float64
	DelinquencyFreq         *float64
	PaymentConsistencyScore *float64
	Amount                  *float64
	InterestRate            *float64
	AnnualIncome            *float64
	CreditScore             *float64
}

type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError lists every offending field and matches errs.ErrValidation.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + " " + is.Message
	}
	return fmt.Sprintf("invalid feature vector: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return errs.ErrValidation }

func (in PredictInput) fields() []*float64 {
	return []*float64{
		in.RepaymentVelocity,
		in.CreditUtilizationRatio,
		in.DelinquencyFreq,
		in.PaymentConsistencyScore,
		in.Amount,
		in.InterestRate,
		in.AnnualIncome,
		in.CreditScore,
	}
}

func (in PredictInput) Validate() error {
	var issues []FieldIssue
	for i, f := range in.fields() {
		switch {
		case f == nil:
			issues = append(issues, FieldIssue{Field: FeatureNames[i], Message: "is required"})
		case math.IsNaN(*f) || math.IsInf(*f, 0):
			issues = append(issues, FieldIssue{Field: FeatureNames[i], Message: "must be a finite number"})
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Vector assumes Validate has passed.
func (in PredictInput) Vector() FeatureVector {
	return FeatureVector{
		RepaymentVelocity:       *in.RepaymentVelocity,
		CreditUtilizationRatio:  *in.CreditUtilizationRatio,
		DelinquencyFreq:         *in.DelinquencyFreq,
		PaymentConsistencyScore: *in.PaymentConsistencyScore,
		Amount:                  *in.Amount,
		InterestRate:            *in.InterestRate,
		AnnualIncome:            *in.AnnualIncome,
		CreditScore:             *in.CreditScore,
	}
}
