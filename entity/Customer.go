package entity

import "github.com/google/uuid"

// Customer is a diner, looked up by phone within one owner. A phone is unique
// among the owner's live customers.
type Customer struct {
	UUIDModel
	Audit
	OwnerID  uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_customer_owner_phone_live,where:deleted_at IS NULL;not null" json:"ownerId"`
	Owner    Owner     `json:"-"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Phone    string    `gorm:"size:20;uniqueIndex:idx_customer_owner_phone_live,where:deleted_at IS NULL;not null" json:"phone"`
	Point    int       `json:"point"`
	IsActive bool      `gorm:"not null" json:"isActive"`

	Orders []Order `json:"-"`
}
