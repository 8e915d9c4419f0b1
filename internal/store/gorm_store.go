package store

import (
	"errors"
	"time"

	"gateway-service/internal/model"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm database handle.
type GormStore struct {
	db *gorm.DB
}

// New returns a Store backed by the given database handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindMerchantByCredentials(apiKey, apiSecret string) (*model.Merchant, error) {
	var merchant model.Merchant
	result := s.db.Where("apikey = ? AND apisecret = ? AND isactive = ?", apiKey, apiSecret, true).First(&merchant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &merchant, nil
}

func (s *GormStore) FindTestMerchant() (*model.Merchant, error) {
	var merchant model.Merchant
	result := s.db.Where("email = ?", model.TestMerchantEmail).First(&merchant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &merchant, nil
}

func (s *GormStore) CreateOrder(order *model.Order) error {
	return s.db.Create(order).Error
}

func (s *GormStore) GetOrder(id, merchantID string) (*model.Order, error) {
	var order model.Order
	result := s.db.Where("id = ? AND merchantid = ?", id, merchantID).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &order, nil
}

func (s *GormStore) GetOrderByID(id string) (*model.Order, error) {
	var order model.Order
	result := s.db.Where("id = ?", id).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &order, nil
}

func (s *GormStore) OrderIDExists(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CreatePayment(payment *model.Payment) error {
	return s.db.Create(payment).Error
}

func (s *GormStore) GetPayment(id string) (*model.Payment, error) {
	var payment model.Payment
	result := s.db.Where("id = ?", id).First(&payment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &payment, nil
}

func (s *GormStore) PaymentIDExists(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) FinalizePayment(paymentID, orderID, status, errorCode, errorDescription string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Guarded transition: only a payment still processing moves to a
		// terminal status, so a duplicate settlement fire is a no-op.
		result := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", paymentID, model.PaymentStatusProcessing).
			Updates(map[string]interface{}{
				"status":           status,
				"errorcode":        errorCode,
				"errordescription": errorDescription,
				"updatedat":        now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":    status,
				"updatedat": now,
			}).Error
	})
}

func (s *GormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
