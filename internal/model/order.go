package model

import "time"

// Order statuses. An order starts out "created" and mirrors the terminal
// status of its most recent payment once settlement lands.
const (
	OrderStatusCreated = "created"
)

// MinOrderAmount is the smallest accepted order amount in minor units
// (paise for INR).
const MinOrderAmount = 100

// Order represents a merchant's intent to collect a payment. Amounts are
// integers in minor units.
type Order struct {
	ID         string    `json:"id" gorm:"column:id;type:varchar(32);primaryKey"`
	MerchantID string    `json:"merchantid" gorm:"column:merchantid;type:uuid;index;not null"`
	Amount     int64     `json:"amount" gorm:"column:amount;not null"`
	Currency   string    `json:"currency" gorm:"column:currency;type:varchar(3);not null"`
	Receipt    string    `json:"receipt" gorm:"column:receipt;type:varchar(255)"`
	Notes      string    `json:"notes" gorm:"column:notes;type:text"`
	Status     string    `json:"status" gorm:"column:status;type:varchar(16);not null"`
	CreatedAt  time.Time `json:"createdat" gorm:"column:createdat"`
	UpdatedAt  time.Time `json:"updatedat" gorm:"column:updatedat"`
}

// TableName overrides the gorm pluralized default
func (Order) TableName() string {
	return "orders"
}
