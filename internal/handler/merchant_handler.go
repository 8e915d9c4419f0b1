package handler

import (
	"errors"
	"net/http"

	"gateway-service/internal/httperr"
	"gateway-service/internal/store"
	"gateway-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TestMerchant handles GET /api/v1/testmerchant. Unauthenticated: it hands
// out the seeded test merchant's ID and API key so the hosted checkout and
// dashboard can bootstrap themselves. The secret is not included.
func (h *Handler) TestMerchant(c echo.Context) error {
	log := logger.FromEcho(c)

	merchant, err := h.store.FindTestMerchant()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound,
				httperr.Envelope(httperr.CodeNotFound, "Test merchant not seeded"))
		}
		log.Error("Failed to fetch test merchant", zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Test endpoint failed"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":     merchant.ID,
		"name":   merchant.Name,
		"email":  merchant.Email,
		"apikey": merchant.APIKey,
	})
}
