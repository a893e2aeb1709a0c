package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDetail is one line of an Order. Price is captured when the order is placed.
type OrderDetail struct {
	UUIDModel
	Audit
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	IsActive bool            `gorm:"not null" json:"isActive"`

	OrderID uuid.UUID `gorm:"type:char(36);index;not null" json:"orderId"`
	Order   Order     `json:"-"`

	DishID uint `gorm:"index;not null" json:"dishId"`
	Dish   Dish `json:"-"`
}

func (d OrderDetail) SubTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
