package models

import "time"

type Dormitory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DormitoryName string    `gorm:"size:255;not null;uniqueIndex" json:"dormitory_name"`
	Domain        string    `gorm:"size:255;not null;uniqueIndex" json:"domain"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	Address       *string   `gorm:"type:text" json:"address"`
	FullCapacity  *int      `json:"full_capacity"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	UniversityID  uint      `gorm:"not null;index" json:"university_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	University University `gorm:"foreignKey:UniversityID" json:"-"`
}
