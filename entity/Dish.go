package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Audit
	OwnerID     uuid.UUID       `gorm:"type:char(36);index;not null" json:"ownerId"`
	Owner       Owner           `json:"-"`
	Name        string          `gorm:"size:150;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    bool            `gorm:"not null" json:"isActive"` // availability

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"` // preload for menu grouping

	OrderDetails []OrderDetail `json:"-"`
}
