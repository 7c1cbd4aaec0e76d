package db

import (
	"time"

	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows whose user_id column equals ownerID.
//
//	db.Scopes(db.OwnedBy(ownerID)).Find(&files)
func OwnedBy(ownerID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", ownerID)
	}
}

// NewestFirst orders by column descending with id as a tiebreaker so equal
// timestamps still list deterministically.
func NewestFirst(column string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(column + " DESC").Order("id DESC")
	}
}

// ActiveExpiredBefore matches sessions still flagged active whose expiry has passed.
func ActiveExpiredBefore(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ? AND expires_at <= ?", true, now)
	}
}
