// Package handler contains the HTTP handlers for the gateway API. Handlers
// are deliberately thin over the Store interface; everything with real
// logic (ID allocation, instrument validation, settlement) lives in its own
// package.
package handler

import (
	"gateway-service/internal/settlement"
	"gateway-service/internal/store"
)

// SettlementScheduler is the slice of the settlement executor handlers
// need: scheduling one deferred settlement task per created payment.
type SettlementScheduler interface {
	Schedule(task settlement.Task)
}

// Handler bundles the dependencies shared by all endpoints.
type Handler struct {
	store       store.Store
	settlements SettlementScheduler
}

// New returns a Handler backed by the given store and settlement scheduler.
func New(s store.Store, settlements SettlementScheduler) *Handler {
	return &Handler{store: s, settlements: settlements}
}
