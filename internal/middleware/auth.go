package middleware

import (
	"errors"
	"net/http"

	"gateway-service/internal/httperr"
	"gateway-service/internal/model"
	"gateway-service/internal/store"
	"gateway-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MerchantContextKey is where the authenticated merchant is stored on the
// echo context.
const MerchantContextKey = "merchant"

// CredentialStore resolves API credentials to an active merchant.
type CredentialStore interface {
	FindMerchantByCredentials(apiKey, apiSecret string) (*model.Merchant, error)
}

// MerchantAuth authenticates a merchant from the X-Api-Key and
// X-Api-Secret headers. The lookup is a single compound match on key,
// secret and active flag, so a wrong secret for a known key fails exactly
// like an unknown key.
func MerchantAuth(s CredentialStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			apiKey := c.Request().Header.Get("X-Api-Key")
			apiSecret := c.Request().Header.Get("X-Api-Secret")
			if apiKey == "" || apiSecret == "" {
				log.Warn("Missing API credentials")
				return c.JSON(http.StatusUnauthorized,
					httperr.Envelope(httperr.CodeAuthentication, "Missing API credentials"))
			}

			merchant, err := s.FindMerchantByCredentials(apiKey, apiSecret)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Warn("Invalid API credentials")
					return c.JSON(http.StatusUnauthorized,
						httperr.Envelope(httperr.CodeAuthentication, "Invalid API credentials"))
				}
				log.Error("Merchant lookup failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError,
					httperr.Envelope(httperr.CodeAuthentication, "Authentication service error"))
			}

			c.Set(MerchantContextKey, merchant)
			return next(c)
		}
	}
}

// MerchantFromContext returns the merchant attached by MerchantAuth.
func MerchantFromContext(c echo.Context) (*model.Merchant, bool) {
	merchant, ok := c.Get(MerchantContextKey).(*model.Merchant)
	return merchant, ok
}
