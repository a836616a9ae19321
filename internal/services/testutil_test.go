package services

import (
	"fmt"
	"testing"

	"github.com/dormmarket/dormmarket-backend/internal/database"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int

// testDB opens a fresh named in-memory database per test. cache=shared keeps
// the schema visible across the pool's connections.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	user := models.User{
		FullName: fmt.Sprintf("Test User %d", userSeq),
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.edu", userSeq),
		Password: string(hash),
		Role:     role,
		Status:   models.StatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedCampus(t *testing.T, db *gorm.DB) (*models.University, *models.Dormitory) {
	t.Helper()
	userSeq++

	university := models.University{
		Name:   fmt.Sprintf("Test University %d", userSeq),
		Domain: fmt.Sprintf("uni%d.edu", userSeq),
	}
	if err := db.Create(&university).Error; err != nil {
		t.Fatalf("seed university: %v", err)
	}

	dormitory := models.Dormitory{
		DormitoryName: fmt.Sprintf("Test Dorm %d", userSeq),
		Domain:        fmt.Sprintf("dorm%d.edu", userSeq),
		IsActive:      true,
		UniversityID:  university.ID,
	}
	if err := db.Create(&dormitory).Error; err != nil {
		t.Fatalf("seed dormitory: %v", err)
	}

	return &university, &dormitory
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.ConditionLevel) {
	t.Helper()
	userSeq++

	category := models.Category{Name: fmt.Sprintf("Category %d", userSeq)}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	level := models.ConditionLevel{Name: fmt.Sprintf("Condition %d", userSeq), SortOrder: 1}
	if err := db.Create(&level).Error; err != nil {
		t.Fatalf("seed condition level: %v", err)
	}

	return &category, &level
}

func seedProduct(t *testing.T, db *gorm.DB, seller *models.User, dormitory *models.Dormitory, category *models.Category, level *models.ConditionLevel, price float64) *models.Product {
	t.Helper()

	product := models.Product{
		SellerID:         seller.ID,
		DormitoryID:      dormitory.ID,
		CategoryID:       category.ID,
		ConditionLevelID: level.ID,
		Title:            "Desk Lamp",
		Price:            price,
		Status:           models.ProductAvailable,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}
