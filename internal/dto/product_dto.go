package dto

import (
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/models"
)

type CreateProductRequest struct {
	CategoryID         uint     `json:"category_id" form:"category_id" validate:"required,min=1"`
	ConditionLevelID   uint     `json:"condition_level_id" form:"condition_level_id" validate:"required,min=1"`
	Title              string   `json:"title" form:"title" validate:"required,max=255"`
	Description        *string  `json:"description" form:"description"`
	Price              float64  `json:"price" form:"price" validate:"required,gte=0.01"`
	DormitoryID        *uint    `json:"dormitory_id" form:"dormitory_id"`
	TagIDs             []uint   `json:"tag_ids" form:"tag_ids" validate:"omitempty,dive,min=1"`
	PrimaryImageIndex  *int     `json:"primary_image_index" form:"primary_image_index" validate:"omitempty,min=0"`
	ImageURLs          []string `json:"image_urls" form:"image_urls" validate:"omitempty,max=6,dive,max=2048,image_url"`
	ImageThumbnailURLs []string `json:"image_thumbnail_urls" form:"image_thumbnail_urls" validate:"omitempty,max=6,dive,max=2048,image_url"`
}

type UploadImagesRequest struct {
	PrimaryImageIndex  *int     `json:"primary_image_index" form:"primary_image_index" validate:"omitempty,min=0"`
	ImageURLs          []string `json:"image_urls" form:"image_urls" validate:"omitempty,max=6,dive,max=2048,image_url"`
	ImageThumbnailURLs []string `json:"image_thumbnail_urls" form:"image_thumbnail_urls" validate:"omitempty,max=6,dive,max=2048,image_url"`
}

type ProductCardsQuery struct {
	Page     *int `json:"page" query:"page" validate:"omitempty,min=1"`
	PageSize *int `json:"page_size" query:"page_size" validate:"omitempty,min=1,max=50"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type FavoriteRequest struct {
	ProductID uint `json:"product_id" validate:"required,min=1"`
}

// ProductView is a full product payload with its attachments, used by
// listing and detail endpoints.
type ProductView struct {
	models.Product
	Dormitory *DormitoryRef          `json:"dormitory"`
	Images    []models.ProductImage  `json:"images"`
	Tags      []TagRef               `json:"tags"`
}

// ProductDetail extends ProductView with denormalized references for the
// single-product endpoints.
type ProductDetail struct {
	ProductView
	Category       *models.Category       `json:"category"`
	ConditionLevel *models.ConditionLevel `json:"condition_level"`
	Seller         *SellerRef             `json:"seller"`
}

// ProductCard is the compact listing row for the paginated cards endpoint.
type ProductCard struct {
	ID                uint                   `json:"id"`
	Title             string                 `json:"title"`
	Price             float64                `json:"price"`
	Status            string                 `json:"status"`
	CreatedAt         time.Time              `json:"created_at"`
	ImageThumbnailURL *string                `json:"image_thumbnail_url"`
	Dormitory         *DormitoryRef          `json:"dormitory"`
	Category          *models.Category       `json:"category"`
	ConditionLevel    *models.ConditionLevel `json:"condition_level"`
}

type Page struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
