package features

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var trainingHeader = []string{
	"id", "borrower_id", "amount", "term_months", "interest_rate", "grade",
	"issue_date", "loan_status", "installment",
	"full_name", "credit_score", "annual_income", "employment_years", "home_ownership",
	"repayment_velocity", "credit_utilization_ratio", "delinquency_freq",
	"debt_to_income_ratio", "payment_consistency_score", "default_probability",
}

// WriteTrainingCSV writes rows to a temp file next to path and renames it
// into place, so readers never observe a half-written dataset.
func WriteTrainingCSV(path string, rows []TrainingRow) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".training-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(trainingHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err = w.Write(trainingRecord(r)); err != nil {
			return fmt.Errorf("loan %d: %w", r.Loan.ID, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func trainingRecord(r TrainingRow) []string {
	l, b, f := r.Loan, r.Borrower, r.Features
	return []string{
		u64(l.ID), u64(l.BorrowerID), num(l.Amount), strconv.Itoa(l.TermMonths), num(l.InterestRate), l.Grade,
		l.IssueDate.UTC().Format(time.RFC3339), string(l.Status), num(l.Installment),
		b.FullName, strconv.Itoa(b.CreditScore), num(b.AnnualIncome), strconv.Itoa(b.EmploymentYears), string(b.HomeOwnership),
		num(f.RepaymentVelocity), optNum(f.CreditUtilizationRatio), strconv.Itoa(f.DelinquencyFreq),
		optNum(f.DebtToIncomeRatio), num(f.PaymentConsistencyScore), num(f.DefaultProbability),
	}
}

func u64(v uint64) string { return strconv.FormatUint(v, 10) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// optNum writes unavailable values as an empty cell.
func optNum(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}
