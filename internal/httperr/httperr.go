// Package httperr builds the gateway's wire error envelope:
// {"error":{"code":..., "description":...}}.
package httperr

import "github.com/labstack/echo/v4"

// Wire error codes.
const (
	CodeAuthentication  = "AUTHENTICATIONERROR"
	CodeBadRequest      = "BADREQUESTERROR"
	CodeNotFound        = "NOTFOUNDERROR"
	CodeOrderNotFound   = "ORDERNOTFOUND"
	CodePaymentNotFound = "PAYMENTNOTFOUND"
	CodeInvalidCard     = "INVALIDCARD"
	CodeExpiredCard     = "EXPIREDCARD"
	CodeInternal        = "INTERNALERROR"
)

// Envelope returns the JSON body for an error response.
func Envelope(code, description string) echo.Map {
	return echo.Map{
		"error": echo.Map{
			"code":        code,
			"description": description,
		},
	}
}
