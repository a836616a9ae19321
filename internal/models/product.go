package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProductAvailable = "available"
	ProductSold      = "sold"
	ProductBlocked   = "block"
)

// Product is soft-deleted; user-facing queries must exclude rows with
// DeletedAt set. ModifiedBy/ModificationReason are written by admin
// moderation only.
type Product struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	SellerID           uint           `gorm:"not null;index" json:"seller_id"`
	DormitoryID        uint           `gorm:"not null;index" json:"dormitory_id"`
	CategoryID         uint           `gorm:"not null;index" json:"category_id"`
	ConditionLevelID   uint           `gorm:"not null" json:"condition_level_id"`
	Title              string         `gorm:"size:255;not null" json:"title"`
	Description        *string        `gorm:"type:text" json:"description"`
	Price              float64        `gorm:"not null" json:"price"`
	Status             string         `gorm:"size:20;not null;default:'available'" json:"status"`
	ModifiedBy         *uint          `json:"modified_by"`
	ModificationReason *string        `gorm:"size:1000" json:"modification_reason"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Seller    User      `gorm:"foreignKey:SellerID" json:"-"`
	Dormitory Dormitory `gorm:"foreignKey:DormitoryID" json:"-"`
}
