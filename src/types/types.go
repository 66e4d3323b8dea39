package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

// Handler consumes one queue message body.
type Handler func(payload string)

type Environment string

const (
	Local      Environment = "local"
	Test       Environment = "test"
	Production Environment = "production"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type UUIDRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}
