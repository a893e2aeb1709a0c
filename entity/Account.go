package entity

import "github.com/google/uuid"

const (
	RoleOwner    = "owner"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

type Account struct {
	UUIDModel
	Audit
	Username string `gorm:"size:50;index;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role     string `gorm:"size:20;not null" json:"role"`

	OwnerID *uuid.UUID `gorm:"type:char(36);index" json:"ownerId,omitempty"`
	Owner   *Owner     `json:"-"`
	StaffID *uuid.UUID `gorm:"type:char(36);index" json:"staffId,omitempty"`
	Staff   *Staff     `json:"-"`
}
