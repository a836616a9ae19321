package models

import "time"

// Conversation threads two participants. For direct (non-product) messaging
// ProductID is nil and the pair is normalized so BuyerID < SellerID, which
// keeps exactly one canonical row per unordered pair.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID *uint     `gorm:"index" json:"product_id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
