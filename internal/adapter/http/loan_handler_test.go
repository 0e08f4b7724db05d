package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"creditpath-backend/internal/domain/borrower"
	domain "creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/testutil/borrowermock"
	"creditpath-backend/internal/testutil/loanmock"
	uc "creditpath-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func getWithParam(t *testing.T, h echo.HandlerFunc, target, name, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if name != "" {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGetLoan_Success(t *testing.T) {
	loans := &loanmock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Loan, error) {
			return &domain.Loan{ID: id, BorrowerID: 3, Amount: 7500, Status: domain.StatusFullyPaid}, nil
		},
	}
	bs := &borrowermock.Repo{ByID: map[uint64]borrower.Borrower{3: {ID: 3, FullName: "Katherine Johnson"}}}
	h := NewLoanHandler(uc.NewUsecase(loans, bs))

	rec := getWithParam(t, h.GetLoan, "/loans/42", "id", "42")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got["id"] != float64(42) || got["amount"] != float64(7500) || got["status"] != "Fully Paid" || got["borrower_name"] != "Katherine Johnson" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	loans := &loanmock.Repo{
		GetByIDFn: func(context.Context, uint64) (*domain.Loan, error) { return nil, gorm.ErrRecordNotFound },
	}
	h := NewLoanHandler(uc.NewUsecase(loans, &borrowermock.Repo{}))

	rec := getWithParam(t, h.GetLoan, "/loans/999", "id", "999")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetLoan_BadID(t *testing.T) {
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &borrowermock.Repo{}))
	for _, id := range []string{"abc", "-1", ""} {
		rec := getWithParam(t, h.GetLoan, "/loans/x", "id", id)
		if rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("id %q: status = %d, want 400", id, rec.Code)
		}
	}
}

func TestDashboardStats_OK(t *testing.T) {
	loans := &loanmock.Repo{
		CountFn:   func(context.Context) (int64, error) { return 2, nil },
		AmountsFn: func(context.Context) ([]float64, error) { return []float64{100.25, 200.5}, nil },
		CountByStatusFn: func(context.Context) ([]domain.StatusCount, error) {
			return []domain.StatusCount{{Status: domain.StatusCurrent, Count: 2}}, nil
		},
	}
	h := NewLoanHandler(uc.NewUsecase(loans, &borrowermock.Repo{}))

	rec := getWithParam(t, h.DashboardStats, "/dashboard/stats", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got domain.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.TotalLoans != 2 || got.TotalVolume != 300.75 || got.StatusDistribution["Current"] != 2 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestDashboardStats_StorageFailure(t *testing.T) {
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &borrowermock.Repo{}))
	rec := getWithParam(t, h.DashboardStats, "/dashboard/stats", "", "")
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestListBorrowers_DefaultsAndQuery(t *testing.T) {
	var gotOffset, gotLimit int
	loans := &loanmock.Repo{
		ListWithBorrowersFn: func(_ context.Context, offset, limit int) ([]domain.BorrowerLoanRow, error) {
			gotOffset, gotLimit = offset, limit
			return []domain.BorrowerLoanRow{{LoanID: 1, BorrowerID: 7, FullName: "Ada", CreditScore: 700, Amount: 10, Status: domain.StatusCurrent}}, nil
		},
	}
	h := NewLoanHandler(uc.NewUsecase(loans, &borrowermock.Repo{}))

	rec := getWithParam(t, h.ListBorrowers, "/borrowers", "", "")
	if rec.Code != stdhttp.StatusOK || gotOffset != 0 || gotLimit != 20 {
		t.Fatalf("defaults: status=%d offset=%d limit=%d", rec.Code, gotOffset, gotLimit)
	}
	var got []uc.BorrowerSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].RiskSegment != "Calculated on-demand" {
		t.Fatalf("unexpected page: %+v", got)
	}

	rec = getWithParam(t, h.ListBorrowers, "/borrowers?skip=40&limit=500", "", "")
	if rec.Code != stdhttp.StatusOK || gotOffset != 40 || gotLimit != uc.MaxLimit {
		t.Fatalf("query: status=%d offset=%d limit=%d", rec.Code, gotOffset, gotLimit)
	}
}

func TestListBorrowers_ZeroLimitIsEmptyPage(t *testing.T) {
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &borrowermock.Repo{}))
	rec := getWithParam(t, h.ListBorrowers, "/borrowers?limit=0", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []uc.BorrowerSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want [], got %s (%v)", rec.Body.String(), err)
	}
}

func TestListBorrowers_InvalidParams(t *testing.T) {
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &borrowermock.Repo{}))
	for target, field := range map[string]string{
		"/borrowers?skip=-1":   "skip",
		"/borrowers?limit=ten": "limit",
		"/borrowers?limit=-20": "limit",
		"/borrowers?skip=1.5":  "skip",
	} {
		rec := getWithParam(t, h.ListBorrowers, target, "", "")
		if rec.Code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("%s: status = %d, want 422", target, rec.Code)
		}
		var er ErrorResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &er)
		if len(er.Details) != 1 || er.Details[0].Field != field {
			t.Fatalf("%s: details = %+v", target, er.Details)
		}
	}
}
