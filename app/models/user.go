package models

import "time"

type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string     `json:"-" gorm:"not null" validate:"required,min=8"`
	FullName  string     `json:"full_name" gorm:"not null" validate:"required"`
	Phone     string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Roles []*Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// Profile carries the role-specific registration details a user fills in
// after signup (company details for suppliers, licence for SPVs, MDA
// affiliation for ministry officers).
type Profile struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	UserID             string     `json:"user_id" gorm:"not null;uniqueIndex;type:uuid" validate:"required,uuid"`
	CompanyName        *string    `json:"company_name,omitempty"`
	RegistrationNumber *string    `json:"registration_number,omitempty"`
	TaxID              *string    `json:"tax_id,omitempty"`
	BankName           *string    `json:"bank_name,omitempty"`
	BankAccount        *string    `json:"bank_account,omitempty"`
	SPVName            *string    `json:"spv_name,omitempty"`
	LicenseNumber      *string    `json:"license_number,omitempty"`
	MDAName            *string    `json:"mda_name,omitempty"`
	MDACode            *string    `json:"mda_code,omitempty"`
	Department         *string    `json:"department,omitempty"`
	Address            *string    `json:"address,omitempty"`
	ProfileCompleted   bool       `json:"profile_completed" gorm:"default:false"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
