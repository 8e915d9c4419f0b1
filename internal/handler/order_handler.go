package handler

import (
	"errors"
	"net/http"

	"gateway-service/internal/httperr"
	"gateway-service/internal/idgen"
	"gateway-service/internal/middleware"
	"gateway-service/internal/model"
	"gateway-service/internal/store"
	"gateway-service/pkg/logger"
	"gateway-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateOrder handles POST /api/v1/orders
func (h *Handler) CreateOrder(c echo.Context) error {
	log := logger.FromEcho(c)

	merchant, ok := middleware.MerchantFromContext(c)
	if !ok {
		log.Error("Merchant missing from request context")
		return c.JSON(http.StatusUnauthorized,
			httperr.Envelope(httperr.CodeAuthentication, "Missing API credentials"))
	}

	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
		Notes    string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse order creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest,
			httperr.Envelope(httperr.CodeBadRequest, "invalid request body"))
	}

	if req.Amount < model.MinOrderAmount {
		log.Warn("Order amount below minimum", zap.Int64("amount", req.Amount))
		return c.JSON(http.StatusBadRequest,
			httperr.Envelope(httperr.CodeBadRequest, "amount must be at least 100"))
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	orderID, err := idgen.AllocateUnique("order", h.store.OrderIDExists)
	if err != nil {
		log.Error("Failed to allocate order ID", zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Could not generate unique order ID"))
	}

	order := &model.Order{
		ID:         orderID,
		MerchantID: merchant.ID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Receipt:    req.Receipt,
		Notes:      req.Notes,
		Status:     model.OrderStatusCreated,
	}
	if err := h.store.CreateOrder(order); err != nil {
		log.Error("Failed to persist order", zap.String("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Order creation failed"))
	}

	prometheus.CreateOrderCounter.Inc()
	log.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("merchant_id", order.MerchantID),
		zap.Int64("amount", order.Amount))

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/:orderId. The read is scoped to the
// authenticated merchant; another merchant's order reads as not found.
func (h *Handler) GetOrder(c echo.Context) error {
	log := logger.FromEcho(c)

	merchant, ok := middleware.MerchantFromContext(c)
	if !ok {
		log.Error("Merchant missing from request context")
		return c.JSON(http.StatusUnauthorized,
			httperr.Envelope(httperr.CodeAuthentication, "Missing API credentials"))
	}

	orderID := c.Param("orderId")
	order, err := h.store.GetOrder(orderID, merchant.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound,
				httperr.Envelope(httperr.CodeNotFound, "Order not found"))
		}
		log.Error("Failed to fetch order", zap.String("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Order fetch failed"))
	}

	return c.JSON(http.StatusOK, order)
}
