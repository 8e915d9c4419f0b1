package handler

import (
	"gateway-service/internal/model"
	"gateway-service/internal/settlement"

	"github.com/stretchr/testify/mock"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) FindMerchantByCredentials(apiKey, apiSecret string) (*model.Merchant, error) {
	args := m.Called(apiKey, apiSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *StoreMock) FindTestMerchant() (*model.Merchant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *StoreMock) CreateOrder(order *model.Order) error {
	return m.Called(order).Error(0)
}

func (m *StoreMock) GetOrder(id, merchantID string) (*model.Order, error) {
	args := m.Called(id, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *StoreMock) GetOrderByID(id string) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *StoreMock) OrderIDExists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) CreatePayment(payment *model.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *StoreMock) GetPayment(id string) (*model.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *StoreMock) PaymentIDExists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) FinalizePayment(paymentID, orderID, status, errorCode, errorDescription string) error {
	return m.Called(paymentID, orderID, status, errorCode, errorDescription).Error(0)
}

func (m *StoreMock) Ping() error {
	return m.Called().Error(0)
}

type SchedulerMock struct {
	mock.Mock
}

func (m *SchedulerMock) Schedule(task settlement.Task) {
	m.Called(task)
}
