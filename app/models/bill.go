package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a supplier invoice against an MDA. Status moves through
// the receivables pipeline: submitted -> under_review -> verified ->
// certified -> purchased -> obligor_paid -> settled (or rejected).
type Bill struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SupplierID        string          `json:"supplier_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	MDAID             string          `json:"mda_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	InvoiceNumber     string          `json:"invoice_number" gorm:"uniqueIndex;not null" validate:"required"`
	InvoiceDate       time.Time       `json:"invoice_date" gorm:"not null" validate:"required"`
	DueDate           time.Time       `json:"due_date" gorm:"not null" validate:"required"`
	Amount            decimal.Decimal `json:"amount" gorm:"not null;type:decimal(18,2)" validate:"required"`
	Currency          string          `json:"currency" gorm:"type:varchar(3);default:'KES'"`
	Description       string          `json:"description"`
	WorkDescription   string          `json:"work_description"`
	ContractReference string          `json:"contract_reference"`
	Status            BillStatus      `json:"status" gorm:"not null;default:'submitted';index;type:varchar(20)"`
	StatusHistory     []byte          `json:"status_history,omitempty" gorm:"type:jsonb"`
	VerifiedBy        *string         `json:"verified_by,omitempty" gorm:"type:uuid"`
	VerifiedAt        *time.Time      `json:"verified_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Supplier *User `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;references:ID"`
	MDA      *MDA  `json:"mda,omitempty" gorm:"foreignKey:MDAID;references:ID"`
}

// BillStatusEvent is one entry in a bill's JSONB status history log.
type BillStatusEvent struct {
	Status    BillStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Note      string     `json:"note,omitempty"`
	ActorID   string     `json:"actor_id,omitempty"`
}
