package services

import (
	"errors"
	"testing"

	"github.com/dormmarket/dormmarket-backend/internal/models"
	"gorm.io/gorm"
)

func newFavoriteService(db *gorm.DB) *FavoriteService {
	products := newProductService(db)
	return NewFavoriteService(db, NewEventService(db), products)
}

func TestAddFavoriteIdempotent(t *testing.T) {
	db := testDB(t)
	svc := newFavoriteService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller, dormitory, category, level, 10)

	created, err := svc.Add(buyer.ID, product.ID, RequestMeta{})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !created {
		t.Fatal("first add should report created")
	}

	created, err = svc.Add(buyer.ID, product.ID, RequestMeta{})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if created {
		t.Fatal("second add should be a no-op")
	}

	var rowCount int64
	db.Model(&models.Favorite{}).Where("user_id = ?", buyer.ID).Count(&rowCount)
	if rowCount != 1 {
		t.Fatalf("favorite rows = %d, want 1", rowCount)
	}

	// Only the first insert fires an event.
	var eventCount int64
	db.Model(&models.BehavioralEvent{}).
		Where("user_id = ? AND event_type = ?", buyer.ID, models.EventFavorite).
		Count(&eventCount)
	if eventCount != 1 {
		t.Fatalf("favorite events = %d, want 1", eventCount)
	}
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	db := testDB(t)
	svc := newFavoriteService(db)
	buyer := seedUser(t, db, models.RoleUser)

	if _, err := svc.Add(buyer.ID, 9999, RequestMeta{}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestMyFavoritesDropsDeletedProducts(t *testing.T) {
	db := testDB(t)
	svc := newFavoriteService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	buyer := seedUser(t, db, models.RoleUser)

	kept := seedProduct(t, db, seller, dormitory, category, level, 10)
	gone := seedProduct(t, db, seller, dormitory, category, level, 20)

	for _, p := range []*models.Product{kept, gone} {
		if _, err := svc.Add(buyer.ID, p.ID, RequestMeta{}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := db.Delete(gone).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	views, err := svc.My(buyer.ID)
	if err != nil {
		t.Fatalf("my favorites: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("favorites = %d, want 1", len(views))
	}
	if views[0].ID != kept.ID {
		t.Fatalf("favorite = %d, want %d", views[0].ID, kept.ID)
	}
}
