package models

import (
	"time"

	"gorm.io/datatypes"
)

// University is admin-managed reference data. Pic holds a JSON array of
// image URLs.
type University struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Domain       string         `gorm:"size:255;not null;uniqueIndex" json:"domain"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Address      *string        `gorm:"type:text" json:"address"`
	Website      *string        `gorm:"size:255" json:"website"`
	Pic          datatypes.JSON `json:"pic"`
	ContactEmail *string        `gorm:"size:255" json:"contact_email"`
	ContactPhone *string        `gorm:"size:20" json:"contact_phone"`
	Description  *string        `gorm:"type:text" json:"description"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
