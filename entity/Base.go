package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel is gorm.Model with a uuid primary key, for rows that are
// referenced from tokens or URLs.
type UUIDModel struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Audit records who touched a row last.
type Audit struct {
	CreatedBy    string     `gorm:"size:100" json:"createdBy,omitempty"`
	ModifiedBy   string     `gorm:"size:100" json:"modifiedBy,omitempty"`
	ModifiedDate *time.Time `json:"modifiedDate,omitempty"`
}

func (a *Audit) Touch(by string, at time.Time) {
	a.ModifiedBy = by
	a.ModifiedDate = &at
}
