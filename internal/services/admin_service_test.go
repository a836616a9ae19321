package services

import (
	"testing"
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(db, newProductService(db))
}

func TestAverageListingPrice(t *testing.T) {
	products := []models.Product{
		{Price: 10, Status: models.ProductAvailable},
		{Price: 20, Status: models.ProductAvailable},
		{Price: 30, Status: models.ProductAvailable},
	}

	// Status does not factor into the average.
	if got := averageListingPrice(products); got != 20.0 {
		t.Fatalf("average = %v, want 20.0", got)
	}
	products[2].Status = models.ProductSold
	if got := averageListingPrice(products); got != 20.0 {
		t.Fatalf("average with sold listing = %v, want 20.0", got)
	}
	if got := averageListingPrice(nil); got != 0.0 {
		t.Fatalf("empty average = %v, want 0.0", got)
	}
}

func TestAverageDailyUploads(t *testing.T) {
	now := time.Now()

	products := make([]models.Product, 10)
	for i := range products {
		products[i].CreatedAt = now
	}
	// Earliest upload 4 days back makes the span 5 days inclusive.
	products[0].CreatedAt = now.AddDate(0, 0, -4)

	if got := averageDailyUploads(products, now); got != 2.0 {
		t.Fatalf("uploads/day = %v, want 2.0", got)
	}
	if got := averageDailyUploads(nil, now); got != 0.0 {
		t.Fatalf("empty uploads/day = %v, want 0.0", got)
	}
}

func TestBlockProductRecordsModeration(t *testing.T) {
	db := testDB(t)
	svc := newAdminService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)
	seller := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	product := seedProduct(t, db, seller, dormitory, category, level, 10)

	blocked, err := svc.BlockProduct(admin.ID, product.ID, &dto.BlockProductRequest{
		Reason: "Prohibited item",
	})
	if err != nil {
		t.Fatalf("block: %v", err)
	}

	if blocked.Status != models.ProductBlocked {
		t.Fatalf("status = %q, want block", blocked.Status)
	}
	if blocked.ModifiedBy == nil || *blocked.ModifiedBy != admin.ID {
		t.Fatal("modified_by not stamped")
	}
	if blocked.ModificationReason == nil || *blocked.ModificationReason != "Prohibited item" {
		t.Fatal("modification_reason not stamped")
	}
}

func TestCreateDormitoryUnknownUniversity(t *testing.T) {
	db := testDB(t)
	svc := newAdminService(db)

	_, err := svc.CreateDormitory(&dto.CreateDormitoryRequest{
		DormitoryName:  "North Hall",
		Domain:         "north.example.edu",
		UniversityName: "No Such University",
	})
	if err != ErrUniversityNotFound {
		t.Fatalf("expected ErrUniversityNotFound, got %v", err)
	}
}

func TestCreateUniversityDuplicateName(t *testing.T) {
	db := testDB(t)
	svc := newAdminService(db)
	university, _ := seedCampus(t, db)

	_, err := svc.CreateUniversity(&dto.CreateUniversityRequest{
		Name:   university.Name,
		Domain: "fresh.example.edu",
	})

	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := verr.Fields["name"]
	if len(got) != 1 || got[0] != "The name has already been taken." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestShowUserCounts(t *testing.T) {
	db := testDB(t)
	svc := newAdminService(db)
	_, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)

	seller := seedUser(t, db, models.RoleUser)
	db.Model(seller).Update("dormitory_id", dormitory.ID)

	seedProduct(t, db, seller, dormitory, category, level, 10)
	sold := seedProduct(t, db, seller, dormitory, category, level, 20)
	db.Model(sold).Update("status", models.ProductSold)

	detail, err := svc.ShowUser(seller.ID)
	if err != nil {
		t.Fatalf("show user: %v", err)
	}
	if detail.ListedCount != 1 {
		t.Fatalf("listed = %d, want 1", detail.ListedCount)
	}
	if detail.SoldCount != 1 {
		t.Fatalf("sold = %d, want 1", detail.SoldCount)
	}
	if detail.DormitoryName == nil || *detail.DormitoryName != dormitory.DormitoryName {
		t.Fatal("dormitory name missing")
	}
}

func TestUniversityDashboard(t *testing.T) {
	db := testDB(t)
	svc := newAdminService(db)
	university, dormitory := seedCampus(t, db)
	category, level := seedCatalog(t, db)

	seller := seedUser(t, db, models.RoleUser)
	db.Model(seller).Update("dormitory_id", dormitory.ID)

	older := seedProduct(t, db, seller, dormitory, category, level, 40)
	db.Model(older).Update("created_at", time.Now().AddDate(0, 0, -3))
	sold := seedProduct(t, db, seller, dormitory, category, level, 60)
	db.Model(sold).Update("status", models.ProductSold)

	dash, err := svc.ShowUniversityDashboard(university.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dash.ListingsTotal != 2 {
		t.Fatalf("listings = %d, want 2", dash.ListingsTotal)
	}
	if dash.DormitoriesCount != 1 || dash.UsersCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", dash.DormitoriesCount, dash.UsersCount)
	}
	// Sold listings count toward the average like any other.
	if dash.AverageOrderValue != 50.0 {
		t.Fatalf("average order value = %v, want 50.0", dash.AverageOrderValue)
	}
	// Earliest upload 3 days back: 2 listings over a 4-day span.
	if dash.AverageDailyUploads != 0.5 {
		t.Fatalf("daily uploads = %v, want 0.5", dash.AverageDailyUploads)
	}
	if len(dash.Listings) != 2 || dash.Listings[0].ID != older.ID {
		t.Fatalf("flat listings not id-ascending: %+v", dash.Listings)
	}
	if len(dash.RecentListings) != 2 || dash.RecentListings[0].ID != sold.ID {
		t.Fatalf("recent listings not newest-first: %+v", dash.RecentListings)
	}
	if dash.CategoriesTotal != 1 || dash.Categories[0].ProductCount != 2 {
		t.Fatalf("categories wrong: %+v", dash.Categories)
	}
}
