package handler

import (
	"net/http"

	"gateway-service/internal/validation"

	"github.com/labstack/echo/v4"
)

// Root handles GET /
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment Gateway API v1"})
}

// TestLuhn handles GET /test-luhn/:card, a development probe for the Luhn
// checksum.
func TestLuhn(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"valid": validation.LuhnCheck(c.Param("card"))})
}
