package handler

import (
	"context"
	"net/http"
	"time"

	"bazaar/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	DB Pinger `optional:"true"`
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{db: params.DB}
}

// HealthCheck reports ok, or 503 when the database does not answer.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			return response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is unreachable")
		}
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
