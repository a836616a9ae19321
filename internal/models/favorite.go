package models

import "time"

// Favorite is unique per (user, product); the composite index makes
// concurrent duplicate requests collapse onto one row.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_pair" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_favorites_pair;index" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
