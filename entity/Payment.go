package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	UUIDModel
	Audit
	Cost     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	Time     time.Time       `json:"time"`
	IsActive bool            `gorm:"not null" json:"isActive"`

	OrderID uuid.UUID `gorm:"type:char(36);index;not null" json:"orderId"`
	Order   Order     `json:"-"`

	PaymentMethodID uint          `json:"paymentMethodId"`
	PaymentMethod   PaymentMethod `json:"-"`
}
