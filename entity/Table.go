package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Audit
	OwnerID       uuid.UUID   `gorm:"type:char(36);index:idx_table_owner_number;not null" json:"ownerId"`
	Owner         Owner       `json:"-"`
	TableNumber   int         `gorm:"index:idx_table_owner_number;not null" json:"tableNumber"`
	QRCode        string      `json:"qrCode"` // menu URL encoded in the table's QR code
	IsActive      bool        `gorm:"not null" json:"isActive"`
	TableStatusID uint        `json:"tableStatusId"`
	TableStatus   TableStatus `json:"tableStatus"`

	Orders []Order `json:"-"`
}
