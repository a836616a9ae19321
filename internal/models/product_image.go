package models

import "time"

// ProductImage rows are ordered primary-first, then id ascending. At most one
// row per product carries IsPrimary after any write path.
type ProductImage struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"product_id"`
	ImageURL          string    `gorm:"size:2048;not null" json:"image_url"`
	ImageThumbnailURL *string   `gorm:"size:2048" json:"image_thumbnail_url"`
	IsPrimary         bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
