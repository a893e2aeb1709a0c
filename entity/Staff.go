package entity

import "github.com/google/uuid"

type Staff struct {
	UUIDModel
	Audit
	OwnerID  uuid.UUID `gorm:"type:char(36);index;not null" json:"ownerId"`
	Owner    Owner     `json:"-"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:255;index;not null" json:"email"`
	Phone    string    `gorm:"size:20" json:"phone"`
	ImageURL string    `json:"imageUrl"`
	IsActive bool      `gorm:"not null" json:"isActive"`

	Accounts []Account `json:"-"`
}
