package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order is one customer's tab at a table. Orders are deactivated, never deleted.
type Order struct {
	UUIDModel
	Audit
	Time     time.Time `gorm:"index;not null" json:"time"`
	IsActive bool      `gorm:"not null" json:"isActive"`

	CustomerID uuid.UUID `gorm:"type:char(36);index;not null" json:"customerId"`
	Customer   Customer  `json:"-"`

	TableID uint  `gorm:"index;not null" json:"tableId"`
	Table   Table `json:"-"`

	OwnerID uuid.UUID `gorm:"type:char(36);index;not null" json:"ownerId"`
	Owner   Owner     `json:"-"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	// preload only for detail views
	OrderDetails []OrderDetail `json:"-"`
	Payments     []Payment     `json:"-"`
}
