package services

import (
	"fmt"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"gorm.io/gorm"
)

// CatalogService serves the read-mostly reference data: categories,
// condition levels, tags, dormitories.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Categories() ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.Order("id").Find(&categories).Error
	return categories, err
}

func (s *CatalogService) ConditionLevels() ([]models.ConditionLevel, error) {
	levels := []models.ConditionLevel{}
	err := s.db.Order("sort_order").Order("id").Find(&levels).Error
	return levels, err
}

func (s *CatalogService) Tags() ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.db.Order("id").Find(&tags).Error
	return tags, err
}

func (s *CatalogService) Dormitories() ([]models.Dormitory, error) {
	dormitories := []models.Dormitory{}
	err := s.db.Order("id").Find(&dormitories).Error
	return dormitories, err
}

// DormitoriesByUserUniversity lists the dormitories sharing the user's
// university, resolved through their dormitory. A user without a dormitory
// gets an empty result; a dangling dormitory reference is a lookup failure.
func (s *CatalogService) DormitoriesByUserUniversity(user *models.User) (*uint, []models.Dormitory, error) {
	if user.DormitoryID == nil {
		return nil, []models.Dormitory{}, nil
	}

	var dorm models.Dormitory
	if err := s.db.First(&dorm, *user.DormitoryID).Error; err != nil {
		return nil, nil, ErrDormitoryNotFound
	}

	dormitories := []models.Dormitory{}
	if err := s.db.Where("university_id = ?", dorm.UniversityID).
		Order("id").Find(&dormitories).Error; err != nil {
		return nil, nil, err
	}

	return &dorm.UniversityID, dormitories, nil
}

// CreateTag enforces name uniqueness as a field error, keeping the 422
// contract instead of leaking a constraint violation.
func (s *CatalogService) CreateTag(req *dto.CreateTagRequest) (*models.Tag, error) {
	var count int64
	s.db.Model(&models.Tag{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, &validation.Error{Fields: validation.One("name", "The name has already been taken.")}
	}

	tag := models.Tag{Name: req.Name}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &tag, nil
}
