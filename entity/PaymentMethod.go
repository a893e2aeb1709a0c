package entity

import (
	"gorm.io/gorm"
)

type PaymentMethod struct {
	gorm.Model
	MethodName string `gorm:"size:50;uniqueIndex;not null" json:"methodName"`

	Payments []Payment `json:"-"`
}
