package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrustAccount is a ring-fenced, segregated account holding funds in custody
// for the SPV/trust structure. The waterfall engine only ever reads these;
// balances are moved by the external reconciliation process.
type TrustAccount struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SPVID       string          `json:"spv_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AccountType AccountType     `json:"account_type" gorm:"not null;type:varchar(20)" validate:"required"`
	AccountName string          `json:"account_name" gorm:"not null" validate:"required"`
	BankName    string          `json:"bank_name,omitempty"`
	Balance     decimal.Decimal `json:"balance" gorm:"not null;type:decimal(18,2);default:0"`
	Status      AccountStatus   `json:"status" gorm:"not null;default:'active';index;type:varchar(10)"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	SPV *User `json:"spv,omitempty" gorm:"foreignKey:SPVID;references:ID"`
}
