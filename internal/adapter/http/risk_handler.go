package http

import (
	"net/http"

	"creditpath-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
)

type RiskHandler struct{ uc *scoring.Usecase }

func NewRiskHandler(uc *scoring.Usecase) *RiskHandler { return &RiskHandler{uc: uc} }

type predictReq struct {
	RepaymentVelocity       *float64 `json:"repayment_velocity"        validate:"required,finite"`
	CreditUtilizationRatio  *float64 `json:"credit_utilization_ratio"  validate:"required,finite,gte=0"`
	DelinquencyFreq         *float64 `json:"delinquency_freq"          validate:"required,intlike"`
	PaymentConsistencyScore *float64 `json:"payment_consistency_score" validate:"required,finite,gte=0"`
	Amount                  *float64 `json:"amount"                    validate:"required,finite,gte=0"`
	InterestRate            *float64 `json:"interest_rate"             validate:"required,finite,gte=0"`
	AnnualIncome            *float64 `json:"annual_income"             validate:"required,finite,gte=0"`
	CreditScore             *float64 `json:"credit_score"              validate:"required,finite"`
}

type recommendReq struct {
	DefaultProbability *float64 `json:"default_probability" validate:"required,gte=0,lte=1"`
}

func (h *RiskHandler) Predict(c echo.Context) error {
	var req predictReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := h.uc.Predict(c.Request().Context(), scoring.PredictInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RiskHandler) Recommend(c echo.Context) error {
	var req recommendReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := h.uc.Recommend(c.Request().Context(), *req.DefaultProbability)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
