package scopes

import (
	"strings"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithIDs(ids ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)", ids)
	}
}

func WithPendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending")
}

func WithActive(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

func WithApproved(approved bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_approved = ?", approved)
	}
}

// WithOptional applies column = value only when value is non-empty.
func WithOptional(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// SearchOrders matches q against customer name, email or order id.
func SearchOrders(q string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.TrimSpace(q)
		if q == "" {
			return db
		}
		like := "%" + strings.ToLower(q) + "%"
		return db.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(contact_email) LIKE ? OR CAST(id AS TEXT) LIKE ?",
			like, like, like,
		)
	}
}

func Paginate(limit, offset, fallback int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			limit = fallback
		}
		if offset < 0 {
			offset = 0
		}
		return db.Limit(limit).Offset(offset)
	}
}
