package features

import "time"

const (
	SegmentUnknown = "Unknown"
	ActionNone     = "None"
)

// Table: loan_features. A derived cache, rebuilt wholesale on each run.
//
// CreditUtilizationRatio and DebtToIncomeRatio have no source feed in this
// system; nil means unavailable and is stored as NULL.
type LoanFeatures struct {
	ID                      uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID                  uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_loan_features_loan" json:"loan_id"`
	RepaymentVelocity       float64   `gorm:"column:repayment_velocity" json:"repayment_velocity"`
	CreditUtilizationRatio  *float64  `gorm:"column:credit_utilization_ratio" json:"credit_utilization_ratio"`
	DelinquencyFreq         int       `gorm:"column:delinquency_freq" json:"delinquency_freq"`
	DebtToIncomeRatio       *float64  `gorm:"column:debt_to_income_ratio" json:"debt_to_income_ratio"`
	PaymentConsistencyScore float64   `gorm:"column:payment_consistency_score" json:"payment_consistency_score"`
	DefaultProbability      float64   `gorm:"column:default_probability" json:"default_probability"`
	RiskSegment             string    `gorm:"column:risk_segment;size:32;default:Unknown" json:"risk_segment"`
	RecommendedAction       string    `gorm:"column:recommended_action;size:255;default:None" json:"recommended_action"`
	ComputedAt              time.Time `gorm:"column:computed_at" json:"computed_at"`
}

func (LoanFeatures) TableName() string { return "loan_features" }
