package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"creditpath-backend/internal/domain/errs"
	"creditpath-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
)

// writeError maps use-case errors onto status codes.
func writeError(c echo.Context, err error) error {
	var ve *scoring.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]FieldError, len(ve.Issues))
		for i, is := range ve.Issues {
			details[i] = FieldError{Field: is.Field, Message: is.Message}
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	case errors.Is(err, errs.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrModelUnavailable):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "model not loaded"})
	case errors.Is(err, errs.ErrComputation):
		slog.Error("http: computation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("http: unhandled error", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// bindAndValidate binds and validates the body into v. When it returns false
// the response has already been written. Wrong JSON types are reported as a
// 422 naming the field; anything else unreadable is a 400.
func bindAndValidate(c echo.Context, v any) (bool, error) {
	if err := c.Bind(v); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: te.Field, Message: typeMessage(te.Type)}},
			})
		}
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(v); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Uint64:
		return "must be a number"
	}
	return "must be of type " + t.String()
}
