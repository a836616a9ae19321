package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("invalid access token")

// IssueToken mints an opaque bearer token for the user. The plaintext is
// "<token id>|<secret>" and only the secret's SHA-256 hash is stored; it is
// shown to the client exactly once.
func IssueToken(db *gorm.DB, userID uint, name string) (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	secret := base64.URLEncoding.EncodeToString(secretBytes)

	record := models.AccessToken{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		TokenHash: HashToken(secret),
	}

	if err := db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}

	return record.ID.String() + "|" + secret, nil
}

// FindToken resolves a plaintext token to its record and user, updating
// last_used_at. Returns ErrInvalidToken when the token is unknown (revoked
// tokens are deleted rows, so they resolve the same way).
func FindToken(db *gorm.DB, rawToken string) (*models.AccessToken, *models.User, error) {
	id, secret, ok := strings.Cut(rawToken, "|")
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	var token models.AccessToken
	if err := db.Where("id = ? AND token_hash = ?", tokenID, HashToken(secret)).First(&token).Error; err != nil {
		return nil, nil, ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, token.UserID).Error; err != nil {
		return nil, nil, ErrInvalidToken
	}

	now := time.Now()
	db.Model(&token).Update("last_used_at", now)

	return &token, &user, nil
}

// RevokeToken deletes the token record; a missing record is not an error.
func RevokeToken(db *gorm.DB, tokenID uuid.UUID) error {
	return db.Delete(&models.AccessToken{}, "id = ?", tokenID).Error
}

func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
