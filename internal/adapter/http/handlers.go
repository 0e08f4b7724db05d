package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ModelStatus reports whether a classifier is loaded.
type ModelStatus interface {
	ModelLoaded() bool
}

type Handler struct {
	model     ModelStatus
	entryPath string
}

func NewHandler(model ModelStatus) *Handler {
	return &Handler{model: model, entryPath: "/app/index.html"}
}

func (h *Handler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.entryPath)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "ok",
		"time":         time.Now().UTC().Format(time.RFC3339Nano),
		"model_loaded": h.model != nil && h.model.ModelLoaded(),
	})
}
