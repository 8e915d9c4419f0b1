package handler

import (
	"net/http"
	"time"

	"gateway-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Health handles GET /health. It pings the database so the reported state
// reflects whether the gateway can actually serve traffic.
func (h *Handler) Health(c echo.Context) error {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := h.store.Ping(); err != nil {
		logger.FromEcho(c).Error("Health check database ping failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": timestamp,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": timestamp,
	})
}
