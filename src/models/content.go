package models

import (
	"receh48/src/types"
	"time"
)

type SiteContent struct {
	ID    uint   `gorm:"primarykey" json:"-"`
	Key   string `gorm:"column:key;not null;uniqueIndex;size:64" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

func (SiteContent) TableName() string {
	return "site_content"
}

type ServiceStatus struct {
	ID          uint                     `gorm:"primarykey" json:"-"`
	ServiceKey  string                   `gorm:"not null;uniqueIndex;size:32" json:"service_key"`
	ServiceName string                   `json:"service_name"`
	Status      types.AvailabilityStatus `gorm:"not null;size:16" json:"status"`
	Message     *string                  `json:"message,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at"`
}

func (ServiceStatus) TableName() string {
	return "service_status"
}

type TimetableImage struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	ImageURL  string  `gorm:"not null" json:"image_url"`
	Caption   *string `json:"caption,omitempty"`
	SortOrder int     `gorm:"not null;index" json:"sort_order"`
	IsActive  bool    `gorm:"not null" json:"is_active"`

	types.Timestamps
}
