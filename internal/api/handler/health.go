package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/infrastructure/db/jsonfile"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// Verifies the backing dataset file is readable and writable before
// declaring the service ready.
type ReadinessHandler struct {
	store *jsonfile.Store
}

func NewReadinessHandler(store *jsonfile.Store) *ReadinessHandler {
	return &ReadinessHandler{store: store}
}

type readinessResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	if err := h.store.Init(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{
			Status: "degraded",
			Error:  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: "ok"})
}
