package gormrepo

import (
	"testing"
	"time"

	borrowerDomain "creditpath-backend/internal/domain/borrower"
	featuresDomain "creditpath-backend/internal/domain/features"
	loanDomain "creditpath-backend/internal/domain/loan"
	repaymentDomain "creditpath-backend/internal/domain/repayment"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB pinned to one connection so every
// statement (and every transaction) sees the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&borrowerDomain.Borrower{},
		&loanDomain.Loan{},
		&repaymentDomain.Repayment{},
		&featuresDomain.LoanFeatures{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeBorrower(id uint64, name string) borrowerDomain.Borrower {
	return borrowerDomain.Borrower{
		ID:              id,
		FullName:        name,
		CreditScore:     700,
		AnnualIncome:    60_000,
		EmploymentYears: 5,
		HomeOwnership:   borrowerDomain.HomeRent,
	}
}

func makeLoan(id, borrowerID uint64, amount float64, status loanDomain.Status) loanDomain.Loan {
	return loanDomain.Loan{
		ID:           id,
		BorrowerID:   borrowerID,
		Amount:       amount,
		TermMonths:   36,
		InterestRate: 0.12,
		Installment:  332.14,
		Grade:        "B",
		IssueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func seedBasics(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Create(&[]borrowerDomain.Borrower{
		makeBorrower(1, "Ada Lovelace"),
		makeBorrower(2, "Alan Turing"),
	}).Error; err != nil {
		t.Fatalf("seed borrowers: %v", err)
	}
	if err := db.Create(&[]loanDomain.Loan{
		makeLoan(10, 1, 10_000, loanDomain.StatusCurrent),
		makeLoan(11, 1, 5_000.5, loanDomain.StatusChargedOff),
		makeLoan(12, 2, 2_500.25, loanDomain.StatusCurrent),
	}).Error; err != nil {
		t.Fatalf("seed loans: %v", err)
	}
}
