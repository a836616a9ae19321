package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventView     = "view"
	EventClick    = "click"
	EventFavorite = "favorite"
)

// BehavioralEvent is an append-only analytics row; it is never updated or
// deleted.
type BehavioralEvent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	EventType  string         `gorm:"size:50;not null;index" json:"event_type"`
	ProductID  *uint          `gorm:"index" json:"product_id"`
	CategoryID *uint          `json:"category_id"`
	SellerID   *uint          `json:"seller_id"`
	Metadata   datatypes.JSON `json:"metadata"`
	OccurredAt time.Time      `gorm:"not null" json:"occurred_at"`
	SessionID  *string        `gorm:"size:100" json:"session_id"`
	IPAddress  *string        `gorm:"size:45" json:"ip_address"`
	UserAgent  *string        `gorm:"size:512" json:"user_agent"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
