package models

import "time"

// ProductTag is the product/tag join table.
type ProductTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_tags_pair" json:"product_id"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_product_tags_pair;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
