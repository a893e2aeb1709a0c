package entity

import "gorm.io/gorm"

type TableStatus struct {
	gorm.Model
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`

	Tables []Table `json:"-"`
}

const (
	TableStatusAvailable = "Available"
	TableStatusOccupied  = "Occupied"
	TableStatusReserved  = "Reserved"
	TableStatusCleaning  = "Cleaning"
)
