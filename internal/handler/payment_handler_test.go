package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"gateway-service/internal/model"
	"gateway-service/internal/settlement"
	"gateway-service/internal/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingOrder() *model.Order {
	return &model.Order{
		ID:         "orderAAAABBBBCCCCDDDD",
		MerchantID: model.TestMerchantID,
		Amount:     50000,
		Currency:   "INR",
		Status:     model.OrderStatusCreated,
	}
}

func TestCreatePayment_UPI(t *testing.T) {
	t.Parallel()

	order := pendingOrder()

	storeMock := new(StoreMock)
	storeMock.On("GetOrderByID", order.ID).Return(order, nil)
	storeMock.On("PaymentIDExists", mock.AnythingOfType("string")).Return(false, nil)
	storeMock.On("CreatePayment", mock.MatchedBy(func(p *model.Payment) bool {
		return p.Method == model.MethodUPI &&
			p.VPA == "user.name@bank" &&
			p.Status == model.PaymentStatusProcessing &&
			p.Amount == order.Amount &&
			p.Currency == order.Currency &&
			p.MerchantID == order.MerchantID &&
			strings.HasPrefix(p.ID, "pay")
	})).Return(nil)

	schedulerMock := new(SchedulerMock)
	schedulerMock.On("Schedule", mock.MatchedBy(func(task settlement.Task) bool {
		return task.OrderID == order.ID && task.Method == model.MethodUPI && strings.HasPrefix(task.PaymentID, "pay")
	})).Return()

	body := `{"orderid": "` + order.ID + `", "method": "upi", "vpa": "user.name@bank"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/payments", body)

	h := New(storeMock, schedulerMock)
	require.NoError(t, h.CreatePayment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID       string  `json:"id"`
		Entity   string  `json:"entity"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.ID, "pay"))
	require.Equal(t, "payment", resp.Entity)
	require.Equal(t, model.PaymentStatusProcessing, resp.Status)
	// Response amount is in major units; the stored amount stays minor.
	require.Equal(t, 500.0, resp.Amount)
	require.Equal(t, "INR", resp.Currency)

	schedulerMock.AssertNumberOfCalls(t, "Schedule", 1)
	storeMock.AssertExpectations(t)
}

func TestCreatePayment_Card(t *testing.T) {
	t.Parallel()

	order := pendingOrder()

	storeMock := new(StoreMock)
	storeMock.On("GetOrderByID", order.ID).Return(order, nil)
	storeMock.On("PaymentIDExists", mock.AnythingOfType("string")).Return(false, nil)
	storeMock.On("CreatePayment", mock.MatchedBy(func(p *model.Payment) bool {
		return p.Method == model.MethodCard &&
			p.CardNetwork == model.NetworkVisa &&
			p.CardLast4 == "1111" &&
			p.VPA == ""
	})).Return(nil)

	schedulerMock := new(SchedulerMock)
	schedulerMock.On("Schedule", mock.AnythingOfType("settlement.Task")).Return()

	body := `{"orderid": "` + order.ID + `", "method": "card", "cardnumber": "4111111111111111", "cardexpirymm": "12", "cardexpiyyear": "99", "cvv": "123"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/payments", body)

	h := New(storeMock, schedulerMock)
	require.NoError(t, h.CreatePayment(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	storeMock.AssertExpectations(t)
}

func TestCreatePayment_Failures(t *testing.T) {
	t.Parallel()

	order := pendingOrder()

	var tests = []struct {
		name           string
		body           string
		store          func() *StoreMock
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing orderid",
			body:           `{"method": "upi", "vpa": "a@b"}`,
			store:          func() *StoreMock { return new(StoreMock) },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name:           "missing method",
			body:           `{"orderid": "` + order.ID + `"}`,
			store:          func() *StoreMock { return new(StoreMock) },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name: "order not found",
			body: `{"orderid": "orderNOPE", "method": "upi", "vpa": "a@b"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", "orderNOPE").Return(nil, store.ErrNotFound)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "ORDERNOTFOUND",
		},
		{
			name: "invalid vpa",
			body: `{"orderid": "` + order.ID + `", "method": "upi", "vpa": "no-at-sign"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name: "missing vpa",
			body: `{"orderid": "` + order.ID + `", "method": "upi"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name: "invalid card number",
			body: `{"orderid": "` + order.ID + `", "method": "card", "cardnumber": "4111111111111112", "cardexpirymm": "12", "cardexpiyyear": "99", "cvv": "123"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALIDCARD",
		},
		{
			name: "expired card",
			body: `{"orderid": "` + order.ID + `", "method": "card", "cardnumber": "4111111111111111", "cardexpirymm": "01", "cardexpiyyear": "20", "cvv": "123"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "EXPIREDCARD",
		},
		{
			name: "invalid cvv",
			body: `{"orderid": "` + order.ID + `", "method": "card", "cardnumber": "4111111111111111", "cardexpirymm": "12", "cardexpiyyear": "99", "cvv": "12"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name: "unsupported method",
			body: `{"orderid": "` + order.ID + `", "method": "netbanking"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				return m
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BADREQUESTERROR",
		},
		{
			name: "payment id exhausted",
			body: `{"orderid": "` + order.ID + `", "method": "upi", "vpa": "a@b"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				m.On("PaymentIDExists", mock.AnythingOfType("string")).Return(true, nil)
				return m
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNALERROR",
		},
		{
			name: "store fault on create",
			body: `{"orderid": "` + order.ID + `", "method": "upi", "vpa": "a@b"}`,
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetOrderByID", order.ID).Return(order, nil)
				m.On("PaymentIDExists", mock.AnythingOfType("string")).Return(false, nil)
				m.On("CreatePayment", mock.AnythingOfType("*model.Payment")).Return(errors.New("connection refused"))
				return m
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNALERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, rec := newTestContext(t, http.MethodPost, "/api/v1/payments", tt.body)

			schedulerMock := new(SchedulerMock)
			h := New(tt.store(), schedulerMock)
			require.NoError(t, h.CreatePayment(c))
			require.Equal(t, tt.expectedStatus, rec.Code)
			require.Equal(t, tt.expectedCode, wireErrorCode(t, rec.Body.Bytes()))

			// Nothing may be scheduled when creation fails.
			schedulerMock.AssertNotCalled(t, "Schedule", mock.Anything)
		})
	}
}

func TestCreatePayment_MultiplePaymentsPerOrder(t *testing.T) {
	t.Parallel()

	// No uniqueness constraint ties a payment to its order: a second
	// payment against the same order is accepted while the first is still
	// processing.
	order := pendingOrder()

	storeMock := new(StoreMock)
	storeMock.On("GetOrderByID", order.ID).Return(order, nil)
	storeMock.On("PaymentIDExists", mock.AnythingOfType("string")).Return(false, nil)
	storeMock.On("CreatePayment", mock.AnythingOfType("*model.Payment")).Return(nil)

	schedulerMock := new(SchedulerMock)
	schedulerMock.On("Schedule", mock.AnythingOfType("settlement.Task")).Return()

	h := New(storeMock, schedulerMock)
	body := `{"orderid": "` + order.ID + `", "method": "upi", "vpa": "a@b"}`

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, http.MethodPost, "/api/v1/payments", body)
		require.NoError(t, h.CreatePayment(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	storeMock.AssertNumberOfCalls(t, "CreatePayment", 2)
	schedulerMock.AssertNumberOfCalls(t, "Schedule", 2)
}

func TestGetPayment(t *testing.T) {
	t.Parallel()

	payment := &model.Payment{
		ID:         "payAAAABBBBCCCCDDDD1",
		MerchantID: model.TestMerchantID,
		OrderID:    "orderAAAABBBBCCCCDDDD",
		Amount:     50000,
		Currency:   "INR",
		Method:     model.MethodUPI,
		VPA:        "a@b",
		Status:     model.PaymentStatusSuccess,
	}

	var tests = []struct {
		name           string
		store          func() *StoreMock
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "found",
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetPayment", payment.ID).Return(payment, nil)
				return m
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetPayment", payment.ID).Return(nil, store.ErrNotFound)
				return m
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "PAYMENTNOTFOUND",
		},
		{
			name: "store fault",
			store: func() *StoreMock {
				m := new(StoreMock)
				m.On("GetPayment", payment.ID).Return(nil, errors.New("connection refused"))
				return m
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNALERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, rec := newTestContext(t, http.MethodGet, "/api/v1/payments/"+payment.ID, "")
			c.SetParamNames("id")
			c.SetParamValues(payment.ID)

			h := New(tt.store(), new(SchedulerMock))
			require.NoError(t, h.GetPayment(c))
			require.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedCode != "" {
				require.Equal(t, tt.expectedCode, wireErrorCode(t, rec.Body.Bytes()))
				return
			}

			var got model.Payment
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Equal(t, payment.ID, got.ID)
			require.Equal(t, payment.Status, got.Status)
		})
	}
}
