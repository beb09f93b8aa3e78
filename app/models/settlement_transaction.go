package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementTransaction is one recorded money movement belonging to a
// distribution tranche. Created in a batch when a distribution executes,
// always with status authorized; never mutated by the engine afterwards.
// Zero-amount tranches produce no transaction.
type SettlementTransaction struct {
	ID              string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	WaterfallID     string            `json:"waterfall_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	BillID          string            `json:"bill_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FromAccountID   string            `json:"from_account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TransactionType TransactionType   `json:"transaction_type" gorm:"not null;index;type:varchar(30)" validate:"required"`
	Amount          decimal.Decimal   `json:"amount" gorm:"not null;type:decimal(18,2)" validate:"required"`
	Status          TransactionStatus `json:"status" gorm:"not null;default:'authorized';index;type:varchar(15)"`
	ReferenceNumber *string           `json:"reference_number,omitempty"`
	AuthorizedAt    *time.Time        `json:"authorized_at,omitempty"`
	SettledAt       *time.Time        `json:"settled_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at" gorm:"autoCreateTime"`

	Distribution *WaterfallDistribution `json:"distribution,omitempty" gorm:"foreignKey:WaterfallID;references:ID"`
	Bill         *Bill                  `json:"bill,omitempty" gorm:"foreignKey:BillID;references:ID"`
	FromAccount  *TrustAccount          `json:"from_account,omitempty" gorm:"foreignKey:FromAccountID;references:ID"`
}
