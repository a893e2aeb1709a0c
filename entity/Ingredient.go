package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Supplier struct {
	gorm.Model
	OwnerID uuid.UUID `gorm:"type:char(36);index;not null" json:"ownerId"`
	Name    string    `gorm:"size:150;not null" json:"name"`
	Phone   string    `gorm:"size:20" json:"phone"`
	Address string    `json:"address"`
}

type Ingredient struct {
	gorm.Model
	OwnerID uuid.UUID `gorm:"type:char(36);index;not null" json:"ownerId"`
	Name    string    `gorm:"size:150;not null" json:"name"`
	Unit    string    `gorm:"size:20" json:"unit"`

	Imports []IngredientImport `json:"-"`
}

// IngredientImport is one purchase of an ingredient; the dashboard sums TotalCost by day.
type IngredientImport struct {
	gorm.Model
	Quantity  decimal.Decimal `gorm:"type:decimal(12,2)" json:"quantity"`
	TotalCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalCost"`
	Time      time.Time       `gorm:"index" json:"time"`

	IngredientID uint       `gorm:"index;not null" json:"ingredientId"`
	Ingredient   Ingredient `json:"-"`
	SupplierID   *uint      `json:"supplierId,omitempty"`
	Supplier     *Supplier  `json:"-"`
}
