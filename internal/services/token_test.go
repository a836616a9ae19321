package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/google/uuid"
)

func TestIssueAndFindToken(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, models.RoleUser)

	raw, err := IssueToken(db, user.ID, "auth_token")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, secret, ok := strings.Cut(raw, "|")
	if !ok || secret == "" {
		t.Fatalf("token %q missing id|secret shape", raw)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("token id %q is not a uuid: %v", id, err)
	}

	token, found, err := FindToken(db, raw)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("resolved user %d, want %d", found.ID, user.ID)
	}
	if token.LastUsedAt == nil {
		// last_used_at is written after the lookup; re-read the row.
		var reread models.AccessToken
		if err := db.First(&reread, "id = ?", token.ID).Error; err != nil {
			t.Fatalf("reread token: %v", err)
		}
		if reread.LastUsedAt == nil {
			t.Fatal("last_used_at not stamped")
		}
	}

	// The plaintext secret is never stored.
	var count int64
	db.Model(&models.AccessToken{}).Where("token_hash = ?", secret).Count(&count)
	if count != 0 {
		t.Fatal("plaintext token stored as hash")
	}

	// A valid id with the wrong secret does not resolve.
	if _, _, err := FindToken(db, id+"|wrong-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRevokedTokenNoLongerResolves(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, models.RoleUser)

	raw, err := IssueToken(db, user.ID, "auth_token")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	token, _, err := FindToken(db, raw)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if err := RevokeToken(db, token.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, _, err := FindToken(db, raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// Revoking twice is a no-op.
	if err := RevokeToken(db, token.ID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestFindTokenUnknown(t *testing.T) {
	db := testDB(t)

	if _, _, err := FindToken(db, "not-a-real-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
