package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User covers both marketplace users and administrators; the Role column
// decides which surface a token may reach.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FullName       string     `gorm:"size:255;not null" json:"full_name"`
	Username       string     `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string     `gorm:"not null" json:"-"`
	PhoneNumber    *string    `gorm:"size:20" json:"phone_number"`
	Role           string     `gorm:"size:20;not null;default:'user'" json:"role"`
	Status         string     `gorm:"size:20;not null;default:'active'" json:"status"`
	DormitoryID    *uint      `gorm:"index" json:"dormitory_id"`
	ProfilePicture *string    `gorm:"size:2048" json:"profile_picture"`
	StudentID      *string    `gorm:"size:255" json:"student_id"`
	Bio            *string    `gorm:"type:text" json:"bio"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `gorm:"size:255" json:"gender"`
	Language       *string    `gorm:"size:255" json:"language"`
	Timezone       *string    `gorm:"size:255" json:"timezone"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Dormitory *Dormitory `gorm:"foreignKey:DormitoryID" json:"-"`
}
