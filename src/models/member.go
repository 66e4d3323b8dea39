package models

import (
	"receh48/src/types"
	"time"
)

type Member struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	IsActive bool    `gorm:"not null;index" json:"is_active"`
	PhotoURL *string `json:"photo_url,omitempty"`

	MemberFees []MemberFee `json:"member_fees,omitempty"`

	types.Timestamps
}

// MemberFee binds a member to one fee group per service type.
type MemberFee struct {
	ID         uint              `gorm:"primarykey" json:"id"`
	MemberID   uint              `gorm:"not null;uniqueIndex:idx_member_fee_type" json:"member_id"`
	FeeType    types.ServiceType `gorm:"not null;size:16;uniqueIndex:idx_member_fee_type" json:"fee_type"`
	FeeGroupID uint              `gorm:"not null;index" json:"fee_group_id"`

	FeeGroup *FeeGroup `json:"fee_group,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

type FeeGroup struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Fee         int64   `gorm:"not null" json:"fee"`
	Description *string `json:"description,omitempty"`
	// FeeType is written once on create and ignored by updates.
	FeeType  types.ServiceType `gorm:"->;<-:create;not null;size:16;index" json:"fee_type"`
	IsActive bool              `gorm:"not null" json:"is_active"`

	types.Timestamps
}
