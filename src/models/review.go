package models

import (
	"receh48/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID          uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	ServiceType string    `gorm:"not null" json:"service_type"`
	Rating      int       `gorm:"not null" json:"rating"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsApproved  bool      `gorm:"not null;index" json:"is_approved"`

	types.Timestamps
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
