package models

import (
	"receh48/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID             uuid.UUID         `gorm:"primarykey;type:uuid" json:"id"`
	CustomerName   string            `gorm:"->;<-:create;not null" json:"customer_name"`
	ContactTwitter *string           `gorm:"->;<-:create" json:"contact_twitter"`
	ContactLine    *string           `gorm:"->;<-:create" json:"contact_line"`
	ContactEmail   string            `gorm:"->;<-:create;not null;index" json:"contact_email"`
	PasswordJKT    string            `gorm:"->;<-:create;not null" json:"-"`
	PasswordSealed bool              `gorm:"->;<-:create;not null;default:false" json:"-"`
	OrderType      types.ServiceType `gorm:"->;<-:create;not null;size:16;index" json:"order_type"`
	Status         types.OrderStatus `gorm:"not null;size:16;index" json:"status"`
	TotalFee       int64             `gorm:"not null" json:"total_fee"`
	Note           string            `gorm:"->;<-:create;type:text" json:"note"`
	HandledBy      *string           `json:"handled_by,omitempty"`
	SessionID      string            `gorm:"->;<-:create;not null;default:'';size:64;uniqueIndex:idx_orders_session_key" json:"-"`
	IdempotencyKey string            `gorm:"->;<-:create;not null;size:64;uniqueIndex:idx_orders_session_key" json:"-"`

	types.Timestamps
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = types.ORDER_PENDING
	}
	return nil
}
