package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deed represents the trust deed under which an SPV purchased a verified
// bill. The deed fixes the contractual waterfall rates referenced when a
// distribution is created against it.
type Deed struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	BillID         string          `json:"bill_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SPVID          string          `json:"spv_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	DeedReference  string          `json:"deed_reference" gorm:"uniqueIndex;not null" validate:"required"`
	PurchasePrice  decimal.Decimal `json:"purchase_price" gorm:"not null;type:decimal(18,2)" validate:"required"`
	DiscountRate   decimal.Decimal `json:"discount_rate" gorm:"type:decimal(8,6);default:0"`
	ExecutedAt     *time.Time      `json:"executed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Bill *Bill `json:"bill,omitempty" gorm:"foreignKey:BillID;references:ID"`
	SPV  *User `json:"spv,omitempty" gorm:"foreignKey:SPVID;references:ID"`
}
