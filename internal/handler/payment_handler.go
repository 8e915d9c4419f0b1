package handler

import (
	"errors"
	"net/http"
	"time"

	"gateway-service/internal/httperr"
	"gateway-service/internal/idgen"
	"gateway-service/internal/model"
	"gateway-service/internal/settlement"
	"gateway-service/internal/store"
	"gateway-service/internal/validation"
	"gateway-service/pkg/logger"
	"gateway-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// paymentRequest mirrors the wire field names of the public API, including
// the historical "cardexpiyyear" spelling clients already depend on.
type paymentRequest struct {
	OrderID      string `json:"orderid"`
	Method       string `json:"method"`
	VPA          string `json:"vpa"`
	CardNumber   string `json:"cardnumber"`
	CardExpiryMM string `json:"cardexpirymm"`
	CardExpiryYY string `json:"cardexpiyyear"`
	CVV          string `json:"cvv"`
}

// CreatePayment handles POST /api/v1/payments: validate the instrument,
// persist the payment as processing with amount/currency snapshotted from
// the order, then schedule the simulated settlement.
//
// The referenced order is looked up by ID only; the caller's merchant is
// not cross-checked against the order's owner, and the persisted payment
// carries the order's merchant ID. Kept as documented behavior.
func (h *Handler) CreatePayment(c echo.Context) error {
	log := logger.FromEcho(c)

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse payment creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest,
			httperr.Envelope(httperr.CodeBadRequest, "invalid request body"))
	}

	if req.OrderID == "" || req.Method == "" {
		return c.JSON(http.StatusBadRequest,
			httperr.Envelope(httperr.CodeBadRequest, "Missing orderid or method"))
	}

	order, err := h.store.GetOrderByID(req.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest,
				httperr.Envelope(httperr.CodeOrderNotFound, "Order not found"))
		}
		log.Error("Failed to fetch order for payment", zap.String("order_id", req.OrderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Payment creation failed"))
	}

	payment := &model.Payment{
		MerchantID: order.MerchantID,
		OrderID:    order.ID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Method:     req.Method,
		Status:     model.PaymentStatusProcessing,
	}

	switch req.Method {
	case model.MethodUPI:
		if req.VPA == "" {
			return c.JSON(http.StatusBadRequest,
				httperr.Envelope(httperr.CodeBadRequest, "Invalid VPA"))
		}
		if err := validation.ValidateVPA(req.VPA); err != nil {
			return instrumentError(c, err)
		}
		payment.VPA = req.VPA
	case model.MethodCard:
		card, err := validation.ValidateCard(req.CardNumber, req.CardExpiryMM, req.CardExpiryYY, req.CVV, time.Now())
		if err != nil {
			return instrumentError(c, err)
		}
		payment.CardNetwork = card.Network
		payment.CardLast4 = card.Last4
	default:
		return instrumentError(c, validation.ErrUnsupportedMethod)
	}

	paymentID, err := idgen.AllocateUnique("pay", h.store.PaymentIDExists)
	if err != nil {
		log.Error("Failed to allocate payment ID", zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Could not generate unique payment ID"))
	}
	payment.ID = paymentID

	if err := h.store.CreatePayment(payment); err != nil {
		log.Error("Failed to persist payment", zap.String("payment_id", paymentID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Payment creation failed"))
	}

	// Settlement is scheduled only after the payment row exists, so the
	// deferred task can never race its own creation.
	h.settlements.Schedule(settlement.Task{
		PaymentID: payment.ID,
		OrderID:   order.ID,
		Method:    payment.Method,
	})

	prometheus.CreatePaymentCounter.WithLabelValues(payment.Method).Inc()
	log.Info("Payment created",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", order.ID),
		zap.String("method", payment.Method))

	// Amount on the creation response is in major units for display; the
	// persisted amount stays in minor units.
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       payment.ID,
		"entity":   "payment",
		"status":   payment.Status,
		"amount":   float64(order.Amount) / 100,
		"currency": order.Currency,
	})
}

// GetPayment handles GET /api/v1/payments/:id. The read is by payment ID
// only, with no merchant ownership check. Kept as documented behavior.
func (h *Handler) GetPayment(c echo.Context) error {
	log := logger.FromEcho(c)

	paymentID := c.Param("id")
	payment, err := h.store.GetPayment(paymentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound,
				httperr.Envelope(httperr.CodePaymentNotFound, "Payment not found"))
		}
		log.Error("Failed to fetch payment", zap.String("payment_id", paymentID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError,
			httperr.Envelope(httperr.CodeInternal, "Payment fetch failed"))
	}

	return c.JSON(http.StatusOK, payment)
}

func instrumentError(c echo.Context, err error) error {
	var ierr *validation.InstrumentError
	if errors.As(err, &ierr) {
		return c.JSON(http.StatusBadRequest, httperr.Envelope(ierr.Code, ierr.Description))
	}
	return c.JSON(http.StatusBadRequest, httperr.Envelope(httperr.CodeBadRequest, err.Error()))
}
