// Package store is the single home for gateway persistence. Handlers and
// the settlement executor talk to the Store interface so they can be
// exercised against mocks; the gorm implementation below is the only code
// that knows about SQL.
package store

import (
	"errors"

	"gateway-service/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: record not found")

// Store is the persistence contract for the gateway core.
type Store interface {
	// FindMerchantByCredentials resolves an API key/secret pair to an
	// active merchant in a single compound match. A valid key with a wrong
	// secret is indistinguishable from an unknown key.
	FindMerchantByCredentials(apiKey, apiSecret string) (*model.Merchant, error)

	// FindTestMerchant returns the seeded well-known test merchant.
	FindTestMerchant() (*model.Merchant, error)

	CreateOrder(order *model.Order) error
	// GetOrder reads an order scoped to its owning merchant; a foreign
	// merchant's order is reported as not found.
	GetOrder(id, merchantID string) (*model.Order, error)
	// GetOrderByID reads an order with no ownership scoping. Used by
	// payment creation, which does not cross-check the caller against the
	// order's merchant.
	GetOrderByID(id string) (*model.Order, error)
	OrderIDExists(id string) (bool, error)

	CreatePayment(payment *model.Payment) error
	GetPayment(id string) (*model.Payment, error)
	PaymentIDExists(id string) (bool, error)

	// FinalizePayment applies a settlement outcome: the payment's terminal
	// status (with error details on failure) and the parent order's status,
	// written in one transaction. Only a payment still in "processing" is
	// transitioned; ErrNotFound is returned otherwise.
	FinalizePayment(paymentID, orderID, status, errorCode, errorDescription string) error

	// Ping verifies the backing database connection is alive.
	Ping() error
}
