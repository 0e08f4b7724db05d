package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	featuresDomain "creditpath-backend/internal/domain/features"
	loanDomain "creditpath-backend/internal/domain/loan"
	repaymentDomain "creditpath-backend/internal/domain/repayment"

	"gorm.io/gorm"
)

func TestLoanRepository_GetByID(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 11)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BorrowerID != 1 || got.Amount != 5_000.5 || got.Status != loanDomain.StatusChargedOff {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanRepository_GetByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoanRepository_Aggregates(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}

	amounts, err := repo.Amounts(ctx)
	if err != nil {
		t.Fatalf("Amounts: %v", err)
	}
	if len(amounts) != 3 || amounts[0] != 10_000 {
		t.Fatalf("unexpected amounts: %v", amounts)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	got := map[string]int64{}
	for _, c := range counts {
		got[string(c.Status)] = c.Count
	}
	if got["Current"] != 2 || got["Charged Off"] != 1 || len(got) != 2 {
		t.Fatalf("unexpected distribution: %v", got)
	}
}

func TestLoanRepository_ListWithBorrowers_PagedAndJoined(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	ctx := context.Background()

	high := "High Risk"
	if err := db.Create(&[]featuresDomain.LoanFeatures{
		{LoanID: 10, RiskSegment: featuresDomain.SegmentUnknown, RecommendedAction: featuresDomain.ActionNone},
		{LoanID: 11, RiskSegment: high, RecommendedAction: "Assign to recovery agent"},
	}).Error; err != nil {
		t.Fatalf("seed features: %v", err)
	}

	repo := NewLoanRepository(db)
	rows, err := repo.ListWithBorrowers(ctx, 1, 5)
	if err != nil {
		t.Fatalf("ListWithBorrowers: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].LoanID != 11 || rows[0].FullName != "Ada Lovelace" || rows[0].CreditScore != 700 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].RiskSegment == nil || *rows[0].RiskSegment != high {
		t.Fatalf("expected stored segment on loan 11, got %v", rows[0].RiskSegment)
	}
	if rows[1].LoanID != 12 || rows[1].RiskSegment != nil {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}

	first, err := repo.ListWithBorrowers(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ListWithBorrowers: %v", err)
	}
	// "Unknown" segments are reported as unscored.
	if len(first) != 1 || first[0].LoanID != 10 || first[0].RiskSegment != nil {
		t.Fatalf("unexpected page: %+v", first)
	}
}

func TestExistingIDs(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	ctx := context.Background()

	got, err := NewBorrowerRepository(db).ExistingIDs(ctx, []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("ExistingIDs: %v", err)
	}
	if _, ok := got[3]; ok || len(got) != 2 {
		t.Fatalf("unexpected ids: %v", got)
	}

	empty, err := NewLoanRepository(db).ExistingIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty set, got %v %v", empty, err)
	}
}

func TestRepaymentRepository_ListOrdering(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	repo := NewRepaymentRepository(db)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }
	if err := repo.CreateBatch(ctx, []repaymentDomain.Repayment{
		{ID: 3, LoanID: 10, PaymentDate: day(20), PaymentAmount: 300},
		{ID: 1, LoanID: 12, PaymentDate: day(1), PaymentAmount: 100},
		{ID: 2, LoanID: 10, PaymentDate: day(5), PaymentAmount: 200},
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	byLoan, err := repo.ListByLoanID(ctx, 10)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(byLoan) != 2 || byLoan[0].ID != 2 || byLoan[1].ID != 3 {
		t.Fatalf("unexpected order: %+v", byLoan)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].LoanID != 10 || all[2].LoanID != 12 {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestFeaturesRepository_UniquePerLoan(t *testing.T) {
	db := openTestDB(t)
	seedBasics(t, db)
	repo := NewFeaturesRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatch(ctx, []featuresDomain.LoanFeatures{{LoanID: 10}}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := repo.CreateBatch(ctx, []featuresDomain.LoanFeatures{{LoanID: 10}}); err == nil {
		t.Fatalf("expected unique violation for a second row on loan 10")
	}

	got, err := repo.GetByLoanID(ctx, 10)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.CreditUtilizationRatio != nil || got.DebtToIncomeRatio != nil {
		t.Fatalf("placeholders must round-trip as NULL: %+v", got)
	}
}
