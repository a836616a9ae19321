package services

import (
	"errors"
	"testing"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(db, NewEventService(db), nil)
}

func TestCreateProductWithURLs(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)

	seller := seedUser(t, db, models.RoleUser)
	db.Model(seller).Update("dormitory_id", dormitory.ID)
	seller.DormitoryID = &dormitory.ID

	primary := 1
	result, err := svc.Create(seller, &dto.CreateProductRequest{
		CategoryID:        category.ID,
		ConditionLevelID:  level.ID,
		Title:             "Mini Fridge",
		Price:             45.50,
		PrimaryImageIndex: &primary,
	}, &ImageInput{
		URLs:         []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		PrimaryIndex: primary,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if result.Product.DormitoryID != dormitory.ID {
		t.Fatalf("dormitory_id = %d, want profile dormitory %d", result.Product.DormitoryID, dormitory.ID)
	}
	if result.Product.Status != models.ProductAvailable {
		t.Fatalf("status = %q, want available", result.Product.Status)
	}
	if len(result.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(result.Images))
	}
	if result.Images[0].IsPrimary || !result.Images[1].IsPrimary {
		t.Fatal("primary flag landed on the wrong image")
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	_, level := seedCatalog(t, db)

	seller := seedUser(t, db, models.RoleUser)
	db.Model(seller).Update("dormitory_id", dormitory.ID)
	seller.DormitoryID = &dormitory.ID

	_, err := svc.Create(seller, &dto.CreateProductRequest{
		CategoryID:       9999,
		ConditionLevelID: level.ID,
		Title:            "Mini Fridge",
		Price:            45.50,
	}, &ImageInput{})

	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields["category_id"]) == 0 {
		t.Fatalf("missing category_id error: %v", verr.Fields)
	}
}

func TestCreateProductRequiresDormitorySomewhere(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)

	_, err := svc.Create(seller, &dto.CreateProductRequest{
		CategoryID:       category.ID,
		ConditionLevelID: level.ID,
		Title:            "Mini Fridge",
		Price:            45.50,
	}, &ImageInput{})

	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := verr.Fields["dormitory_id"]
	if len(got) != 1 || got[0] != "The dormitory_id field is required." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestMarkSoldIdempotent(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller, dormitory, category, level, 10)

	for i := 0; i < 2; i++ {
		sold, err := svc.MarkSold(seller.ID, product.ID)
		if err != nil {
			t.Fatalf("mark sold (%d): %v", i, err)
		}
		if sold.Status != models.ProductSold {
			t.Fatalf("status = %q, want sold", sold.Status)
		}
	}
}

func TestMarkSoldForeignProduct(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	other := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller, dormitory, category, level, 10)

	if _, err := svc.MarkSold(other.ID, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestByTagNameRecordsViewEvents(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	viewer := seedUser(t, db, models.RoleUser)

	tag := models.Tag{Name: "electronics"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	first := seedProduct(t, db, seller, dormitory, category, level, 10)
	second := seedProduct(t, db, seller, dormitory, category, level, 20)
	for _, p := range []*models.Product{first, second} {
		if err := db.Create(&models.ProductTag{ProductID: p.ID, TagID: tag.ID}).Error; err != nil {
			t.Fatalf("seed link: %v", err)
		}
	}

	gotTag, views, err := svc.ByTagName(viewer.ID, "electronics", RequestMeta{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("by tag: %v", err)
	}
	if gotTag.ID != tag.ID {
		t.Fatal("wrong tag")
	}
	if len(views) != 2 {
		t.Fatalf("products = %d, want 2", len(views))
	}
	// Newest first.
	if views[0].ID != second.ID {
		t.Fatalf("first product = %d, want %d", views[0].ID, second.ID)
	}

	var eventCount int64
	db.Model(&models.BehavioralEvent{}).
		Where("user_id = ? AND event_type = ?", viewer.ID, models.EventView).
		Count(&eventCount)
	if eventCount != 2 {
		t.Fatalf("view events = %d, want 2", eventCount)
	}
}

func TestByTagNameUnknown(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	viewer := seedUser(t, db, models.RoleUser)

	if _, _, err := svc.ByTagName(viewer.ID, "missing", RequestMeta{}); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestSoftDeletedProductHiddenBlockedVisible(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	viewer := seedUser(t, db, models.RoleUser)

	deleted := seedProduct(t, db, seller, dormitory, category, level, 10)
	blocked := seedProduct(t, db, seller, dormitory, category, level, 20)

	if err := db.Delete(deleted).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	db.Model(blocked).Update("status", models.ProductBlocked)

	if _, err := svc.Get(viewer.ID, deleted.ID, RequestMeta{}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("soft-deleted product should 404, got %v", err)
	}

	detail, err := svc.Get(viewer.ID, blocked.ID, RequestMeta{})
	if err != nil {
		t.Fatalf("blocked product should stay visible: %v", err)
	}
	if detail.Status != models.ProductBlocked {
		t.Fatalf("status = %q, want block", detail.Status)
	}
}

func TestAttachmentsOrderPrimaryFirst(t *testing.T) {
	db := testDB(t)
	svc := newProductService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller, dormitory, category, level, 10)

	images := []models.ProductImage{
		{ProductID: product.ID, ImageURL: "https://cdn.example.com/a.jpg"},
		{ProductID: product.ID, ImageURL: "https://cdn.example.com/b.jpg", IsPrimary: true},
		{ProductID: product.ID, ImageURL: "https://cdn.example.com/c.jpg"},
	}
	for i := range images {
		if err := db.Create(&images[i]).Error; err != nil {
			t.Fatalf("seed image: %v", err)
		}
	}

	byProduct, _, err := svc.attachments([]uint{product.ID})
	if err != nil {
		t.Fatalf("attachments: %v", err)
	}

	got := byProduct[product.ID]
	if len(got) != 3 {
		t.Fatalf("images = %d, want 3", len(got))
	}
	if !got[0].IsPrimary {
		t.Fatal("primary image not first")
	}
	if got[1].ImageURL != "https://cdn.example.com/a.jpg" {
		t.Fatalf("secondary order wrong: %s", got[1].ImageURL)
	}
}
