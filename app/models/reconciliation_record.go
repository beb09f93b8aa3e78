package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRecord compares what a distribution was expected to move
// against the settlement transactions actually written for it. Variance
// tracking happens before any disbursement is confirmed.
type ReconciliationRecord struct {
	ID              string               `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	WaterfallID     string               `json:"waterfall_id" gorm:"not null;uniqueIndex;type:uuid" validate:"required,uuid"`
	PeriodStart     time.Time            `json:"period_start" gorm:"not null"`
	PeriodEnd       time.Time            `json:"period_end" gorm:"not null"`
	ExpectedBalance decimal.Decimal      `json:"expected_balance" gorm:"not null;type:decimal(18,2)"`
	ActualBalance   decimal.Decimal      `json:"actual_balance" gorm:"not null;type:decimal(18,2)"`
	Variance        decimal.Decimal      `json:"variance" gorm:"not null;type:decimal(18,2)"`
	Status          ReconciliationStatus `json:"status" gorm:"not null;default:'pending';index;type:varchar(15)"`
	CreatedAt       time.Time            `json:"created_at" gorm:"autoCreateTime"`

	Distribution *WaterfallDistribution `json:"distribution,omitempty" gorm:"foreignKey:WaterfallID;references:ID"`
}
