package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadinessChecker reports whether a dependency is ready to serve.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler creates a new HealthHandler. A nil checker is always
// ready.
func NewHealthHandler(checker ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 while the bot is receiving chat updates, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.checker != nil {
		if err := h.checker.Ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
