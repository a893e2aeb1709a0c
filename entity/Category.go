package entity

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Audit
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Dishes []Dish `json:"-"`
}
