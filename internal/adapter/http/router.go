package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Routes carries the handlers and optional middleware wired by Register.
type Routes struct {
	Health  *Handler
	Risk    *RiskHandler
	Loans   *LoanHandler
	Metrics http.Handler
	// Applied to POST routes only; nil disables idempotent replay.
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/", r.Health.Root)
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	var post []echo.MiddlewareFunc
	if r.Idempotency != nil {
		post = append(post, r.Idempotency)
	}
	e.POST("/predict", r.Risk.Predict, post...)
	e.POST("/recommend", r.Risk.Recommend, post...)

	e.GET("/loans/:id", r.Loans.GetLoan)
	e.GET("/dashboard/stats", r.Loans.DashboardStats)
	e.GET("/borrowers", r.Loans.ListBorrowers)
}
