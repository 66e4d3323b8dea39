package booking

import (
	"fmt"
	"receh48/src/types"

	"github.com/google/uuid"
)

type CartField string

const (
	FieldDate          CartField = "date"
	FieldSession       CartField = "session"
	FieldBackupDate    CartField = "backup_date"
	FieldBackupSession CartField = "backup_session"
)

func ParseCartField(v string) (CartField, error) {
	switch f := CartField(v); f {
	case FieldDate, FieldSession, FieldBackupDate, FieldBackupSession:
		return f, nil
	}
	return "", ErrUnknownField
}

// CartItem is one line of the cart. Member and fee values are copied from the
// catalog when the item is added.
type CartItem struct {
	ClientID    string            `json:"client_id"`
	ServiceType types.ServiceType `json:"order_type"`
	MemberID    uint              `json:"member_id"`
	MemberName  string            `json:"member_name"`
	FeeGroupID  uint              `json:"fee_group_id"`
	Fee         int64             `json:"fee"`
	Date        string            `json:"date"`
	Session     string            `json:"session"`

	BackupMemberID   uint   `json:"backup_id,omitempty"`
	BackupMemberName string `json:"backup_name,omitempty"`
	BackupDate       string `json:"backup_date,omitempty"`
	BackupSession    string `json:"backup_session,omitempty"`
}

// HasBackup reports whether any backup field is set.
func (i CartItem) HasBackup() bool {
	return i.BackupMemberID != 0 || i.BackupDate != "" || i.BackupSession != ""
}

func (i CartItem) backupComplete() bool {
	return i.BackupMemberID != 0 && i.BackupMemberName != "" && i.BackupDate != "" && i.BackupSession != ""
}

func (i CartItem) backupCollides() bool {
	return i.BackupMemberID == i.MemberID && i.BackupDate == i.Date && i.BackupSession == i.Session
}

// Cart is the ordered working set of one booking flow. It is not safe for
// concurrent use; Session serializes access to it.
type Cart struct {
	serviceType types.ServiceType
	items       []*CartItem
	notifier    Notifier
}

func NewCart(st types.ServiceType, n Notifier) *Cart {
	if n == nil {
		n = nopNotifier{}
	}
	return &Cart{serviceType: st, notifier: n}
}

func (c *Cart) ServiceType() types.ServiceType {
	return c.serviceType
}

// Add appends a new item for m with empty slots.
func (c *Cart) Add(m CatalogMember) CartItem {
	item := &CartItem{
		ClientID:    uuid.NewString(),
		ServiceType: c.serviceType,
		MemberID:    m.MemberID,
		MemberName:  m.Name,
		FeeGroupID:  m.FeeGroupID,
		Fee:         m.Fee,
	}
	c.items = append(c.items, item)
	c.notifier.Notify(LevelSuccess, fmt.Sprintf("%s ditambahkan ke keranjang", m.Name))
	return *item
}

// Remove deletes the item with clientID. Removing an absent item is a no-op.
func (c *Cart) Remove(clientID string) bool {
	for idx, item := range c.items {
		if item.ClientID == clientID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			c.notifier.Notify(LevelInfo, "Item dihapus dari keranjang")
			return true
		}
	}
	return false
}

func (c *Cart) find(clientID string) *CartItem {
	for _, item := range c.items {
		if item.ClientID == clientID {
			return item
		}
	}
	return nil
}

// Update sets one slot field. Values are checked only by Validate.
func (c *Cart) Update(clientID string, field CartField, value string) error {
	item := c.find(clientID)
	if item == nil {
		return ErrItemNotFound
	}
	switch field {
	case FieldDate:
		item.Date = value
	case FieldSession:
		item.Session = value
	case FieldBackupDate:
		item.BackupDate = value
	case FieldBackupSession:
		item.BackupSession = value
	default:
		return ErrUnknownField
	}
	return nil
}

// SetBackupMember writes the backup member id and its catalog name together.
// A zero memberID clears the whole backup.
func (c *Cart) SetBackupMember(clientID string, catalog *Catalog, memberID uint) error {
	item := c.find(clientID)
	if item == nil {
		return ErrItemNotFound
	}
	if memberID == 0 {
		item.BackupMemberID = 0
		item.BackupMemberName = ""
		item.BackupDate = ""
		item.BackupSession = ""
		return nil
	}
	m, ok := catalog.Find(memberID)
	if !ok {
		return ErrMemberNotFound
	}
	item.BackupMemberID = m.MemberID
	item.BackupMemberName = m.Name
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Fee
	}
	return total
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	for idx, item := range c.items {
		out[idx] = *item
	}
	return out
}

// Validate checks the cart before submission and returns a *ValidationError
// for the first failing class across all items.
func (c *Cart) Validate() error {
	if len(c.items) == 0 {
		return &ValidationError{Class: ClassEmptyCart, Message: MsgEmptyCart}
	}

	var bad []string
	for _, item := range c.items {
		if item.Date == "" || item.Session == "" {
			bad = append(bad, item.ClientID)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Class: ClassIncompleteSlot, Message: MsgIncompleteSlot, ItemIDs: bad}
	}

	for _, item := range c.items {
		if item.HasBackup() && !item.backupComplete() {
			bad = append(bad, item.ClientID)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Class: ClassPartialBackup, Message: MsgPartialBackup, ItemIDs: bad}
	}

	for _, item := range c.items {
		if item.HasBackup() && item.backupCollides() {
			bad = append(bad, item.ClientID)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Class: ClassBackupCollision, Message: MsgBackupCollision, ItemIDs: bad}
	}
	return nil
}
