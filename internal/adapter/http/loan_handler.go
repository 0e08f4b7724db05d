package http

import (
	"fmt"
	"net/http"
	"strconv"

	"creditpath-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "loan id must be a positive integer"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DashboardStats(c echo.Context) error {
	s, err := h.uc.DashboardStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *LoanHandler) ListBorrowers(c echo.Context) error {
	var (
		page    loan.Page
		details []FieldError
	)
	for _, q := range []struct {
		name string
		dst  *int
		def  int
	}{
		{"skip", &page.Skip, 0},
		{"limit", &page.Limit, loan.DefaultLimit},
	} {
		raw := c.QueryParam(q.name)
		if raw == "" {
			*q.dst = q.def
			continue
		}
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details = append(details, FieldError{Field: q.name, Message: "must be an integer"})
		case n < 0:
			details = append(details, FieldError{Field: q.name, Message: "must be greater than or equal to 0"})
		default:
			*q.dst = n
		}
	}
	if len(details) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	}
	if page.Limit == 0 {
		// explicit limit=0 is an empty page, not the default
		return c.JSON(http.StatusOK, []loan.BorrowerSummary{})
	}

	out, err := h.uc.ListBorrowers(c.Request().Context(), page)
	if err != nil {
		return writeError(c, fmt.Errorf("list borrowers: %w", err))
	}
	return c.JSON(http.StatusOK, out)
}
