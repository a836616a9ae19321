package services

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"gorm.io/gorm"
)

type FavoriteService struct {
	db       *gorm.DB
	events   *EventService
	products *ProductService
}

func NewFavoriteService(db *gorm.DB, events *EventService, products *ProductService) *FavoriteService {
	return &FavoriteService{db: db, events: events, products: products}
}

// Add favorites a product for the user. Repeat calls are idempotent: the
// created flag reports whether a row was actually inserted, and the favorite
// event fires only on first insert.
func (s *FavoriteService) Add(userID, productID uint, meta RequestMeta) (created bool, err error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return false, ErrProductNotFound
	}

	var existing models.Favorite
	err = s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	favorite := models.Favorite{UserID: userID, ProductID: productID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, err
	}

	s.events.RecordForProduct(userID, models.EventFavorite, &product, meta)

	return true, nil
}

// My lists the user's favorited products, most recently favorited first.
// Products soft-deleted since being favorited drop out of the result.
func (s *FavoriteService) My(userID uint) ([]dto.ProductView, error) {
	var ids []uint
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("id DESC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}

	products := []models.Product{}
	if len(ids) > 0 {
		if err := s.db.Where("id IN ?", ids).Order("id DESC").Find(&products).Error; err != nil {
			return nil, err
		}
	}

	return s.products.views(products)
}
