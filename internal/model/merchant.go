package model

import "time"

// Well-known test merchant seeded at boot so the hosted checkout and
// dashboard can fetch working credentials without manual setup.
const (
	TestMerchantID     = "550e8400-e29b-41d4-a716-446655440000"
	TestMerchantEmail  = "test@example.com"
	TestMerchantKey    = "keytestabc123"
	TestMerchantSecret = "secrettestxyz789"
)

// Merchant represents a registered merchant account. The core treats this
// table as a read-only registry: rows are seeded or provisioned out of band
// and only ever looked up during authentication.
type Merchant struct {
	ID        string    `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	APIKey    string    `json:"apikey" gorm:"column:apikey;type:varchar(64);index;not null"`
	APISecret string    `json:"-" gorm:"column:apisecret;type:varchar(64);not null"`
	IsActive  bool      `json:"isactive" gorm:"column:isactive;default:true"`
	CreatedAt time.Time `json:"createdat" gorm:"column:createdat"`
	UpdatedAt time.Time `json:"updatedat" gorm:"column:updatedat"`
}

// TableName overrides the gorm pluralized default
func (Merchant) TableName() string {
	return "merchants"
}

// TestMerchant returns the seed row for the well-known test merchant.
func TestMerchant() Merchant {
	return Merchant{
		ID:        TestMerchantID,
		Name:      "Test Merchant",
		Email:     TestMerchantEmail,
		APIKey:    TestMerchantKey,
		APISecret: TestMerchantSecret,
		IsActive:  true,
	}
}
