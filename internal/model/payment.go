package model

import "time"

// Payment methods accepted by the gateway.
const (
	MethodUPI  = "upi"
	MethodCard = "card"
)

// Payment statuses. A payment is created "processing" and transitions
// exactly once to "success" or "failed" when the settlement simulation
// completes.
const (
	PaymentStatusProcessing = "processing"
	PaymentStatusSuccess    = "success"
	PaymentStatusFailed     = "failed"
)

// Card networks detected from the leading digits of the card number.
const (
	NetworkVisa       = "visa"
	NetworkMastercard = "mastercard"
	NetworkAmex       = "amex"
	NetworkRupay      = "rupay"
	NetworkUnknown    = "unknown"
)

// Payment represents a single payment attempt against an order. Amount and
// currency are snapshotted from the order at creation. Card payments store
// only the detected network and last four digits; the full PAN is never
// persisted.
type Payment struct {
	ID               string    `json:"id" gorm:"column:id;type:varchar(32);primaryKey"`
	MerchantID       string    `json:"merchantid" gorm:"column:merchantid;type:uuid;index;not null"`
	OrderID          string    `json:"orderid" gorm:"column:orderid;type:varchar(32);index;not null"`
	Amount           int64     `json:"amount" gorm:"column:amount;not null"`
	Currency         string    `json:"currency" gorm:"column:currency;type:varchar(3);not null"`
	Method           string    `json:"method" gorm:"column:method;type:varchar(8);not null"`
	VPA              string    `json:"vpa,omitempty" gorm:"column:vpa;type:varchar(255)"`
	CardNetwork      string    `json:"cardnetwork,omitempty" gorm:"column:cardnetwork;type:varchar(16)"`
	CardLast4        string    `json:"cardlast4,omitempty" gorm:"column:cardlast4;type:varchar(4)"`
	Status           string    `json:"status" gorm:"column:status;type:varchar(16);not null"`
	ErrorCode        string    `json:"errorcode,omitempty" gorm:"column:errorcode;type:varchar(32)"`
	ErrorDescription string    `json:"errordescription,omitempty" gorm:"column:errordescription;type:varchar(255)"`
	CreatedAt        time.Time `json:"createdat" gorm:"column:createdat"`
	UpdatedAt        time.Time `json:"updatedat" gorm:"column:updatedat"`
}

// TableName overrides the gorm pluralized default
func (Payment) TableName() string {
	return "payments"
}
