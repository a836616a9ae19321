package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is an opaque bearer token bound 1:1 to a user. Only the SHA-256
// hash of the secret is stored; deleting the row revokes the token.
type AccessToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	TokenHash  string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
