package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterfallDistribution records one allocation of an obligor payment across
// the contractual waterfall. The four rates are snapshotted at creation and
// never recomputed. Once status is distributed the row is immutable; rows
// are never deleted.
//
// Invariant: TaxesAmount + TrusteeFeesAmount + AdminFeesAmount +
// InterestAmount + PrincipalAmount + ResidualAmount equals
// ObligorPaymentAmount to the cent (see services.CalculateWaterfall for the
// documented rounding tolerance).
type WaterfallDistribution struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	BillID               string             `json:"bill_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	DeedID               string             `json:"deed_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TrustAccountID       string             `json:"trust_account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ObligorPaymentAmount decimal.Decimal    `json:"obligor_payment_amount" gorm:"not null;type:decimal(18,2)" validate:"required"`
	TaxRate              decimal.Decimal    `json:"tax_rate" gorm:"not null;type:decimal(8,6)"`
	TrusteeFeeRate       decimal.Decimal    `json:"trustee_fee_rate" gorm:"not null;type:decimal(8,6)"`
	AdminFeeRate         decimal.Decimal    `json:"admin_fee_rate" gorm:"not null;type:decimal(8,6)"`
	InterestRate         decimal.Decimal    `json:"interest_rate" gorm:"not null;type:decimal(8,6)"`
	TaxesAmount          decimal.Decimal    `json:"taxes_amount" gorm:"not null;type:decimal(18,2)"`
	TrusteeFeesAmount    decimal.Decimal    `json:"trustee_fees_amount" gorm:"not null;type:decimal(18,2)"`
	AdminFeesAmount      decimal.Decimal    `json:"admin_fees_amount" gorm:"not null;type:decimal(18,2)"`
	InterestAmount       decimal.Decimal    `json:"interest_amount" gorm:"not null;type:decimal(18,2)"`
	PrincipalAmount      decimal.Decimal    `json:"principal_amount" gorm:"not null;type:decimal(18,2)"`
	ResidualAmount       decimal.Decimal    `json:"residual_amount" gorm:"not null;type:decimal(18,2)"`
	Status               DistributionStatus `json:"status" gorm:"not null;default:'pending';index;type:varchar(15)"`
	DistributedAt        *time.Time         `json:"distributed_at,omitempty"`
	CreatedAt            time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time          `json:"updated_at" gorm:"autoUpdateTime"`

	Bill         *Bill         `json:"bill,omitempty" gorm:"foreignKey:BillID;references:ID"`
	Deed         *Deed         `json:"deed,omitempty" gorm:"foreignKey:DeedID;references:ID"`
	TrustAccount *TrustAccount `json:"trust_account,omitempty" gorm:"foreignKey:TrustAccountID;references:ID"`

	Transactions []*SettlementTransaction `json:"transactions,omitempty" gorm:"foreignKey:WaterfallID;references:ID"`
}
