package dto

import (
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/models"
)

type CreateUniversityRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Domain    string   `json:"domain" validate:"required,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address   *string  `json:"address"`
	Pic       []string `json:"pic" validate:"omitempty,dive,max=2048"`
}

type UpdateUniversityRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	Domain       *string  `json:"domain" validate:"omitempty,max=255"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address      *string  `json:"address"`
	Website      *string  `json:"website" validate:"omitempty,url,max=255"`
	Pic          []string `json:"pic" validate:"omitempty,dive,max=2048"`
	ContactEmail *string  `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone *string  `json:"contact_phone" validate:"omitempty,max=20"`
	Description  *string  `json:"description"`
}

type CreateDormitoryRequest struct {
	DormitoryName  string   `json:"dormitory_name" validate:"required,max=255"`
	Domain         string   `json:"domain" validate:"required,max=255"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address        *string  `json:"address"`
	IsActive       *bool    `json:"is_active"`
	UniversityName string   `json:"university_name" validate:"required,max=255"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

type CreateConditionLevelRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,min=0"`
}

type AdminUpdateUserRequest struct {
	StudentID   *string `json:"student_id" validate:"omitempty,max=255"`
	FullName    *string `json:"full_name" validate:"omitempty,max=255"`
	Username    *string `json:"username" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin user"`
	Gender      *string `json:"gender" validate:"omitempty,max=255"`
	Language    *string `json:"language" validate:"omitempty,max=255"`
}

type BlockProductRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type AdminProductsQuery struct {
	PerPage *int `json:"per_page" query:"per_page" validate:"omitempty,min=1,max=100"`
	UserID  uint `json:"user_id" query:"user_id" validate:"required,min=1"`
}

// UniversityRow is a paginated admin listing row with aggregate counts.
type UniversityRow struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Address          *string `json:"address"`
	CreatedAt        string  `json:"created_at"`
	DormitoriesCount int64   `json:"dormitories_count"`
	UsersCount       int64   `json:"users_count"`
}

// UserRow is a paginated admin user listing row.
type UserRow struct {
	ID             uint       `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	ProfilePicture *string    `json:"profile_picture"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	DormitoryName  *string    `json:"dormitory_name"`
	UniversityName *string    `json:"university_name"`
	ProductCount   int64      `json:"product_count"`
	SoldCounter    int64      `json:"sold_counter"`
}

// AdminProductCard is the compact admin listing row for one seller's products.
type AdminProductCard struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  *string   `json:"image_url"`
	Tags      []TagRef  `json:"tags"`
}

// AdminUserDetail is the single-user admin projection with listing counts.
type AdminUserDetail struct {
	models.User
	DormitoryName  *string `json:"dormitory_name"`
	UniversityName *string `json:"university_name"`
	ListedCount    int64   `json:"listed_count"`
	SoldCount      int64   `json:"sold_count"`
}

// AdminProductDetail extends the public detail with event tallies.
type AdminProductDetail struct {
	ProductDetail
	ViewCount     int64 `json:"view_count"`
	ClickCount    int64 `json:"click_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

// RecentListing is one of the dashboard's most recent listings.
type RecentListing struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	SellerName string  `json:"seller_name"`
	Date       *string `json:"date"`
}

// CategoryCount is a per-category listing count on the dashboard.
type CategoryCount struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

// ListingRef is the flat id/title projection on the dashboard.
type ListingRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// UniversityDashboard aggregates one university's marketplace activity.
type UniversityDashboard struct {
	ID                  uint            `json:"id"`
	Name                string          `json:"name"`
	Domain              string          `json:"domain"`
	Latitude            *float64        `json:"latitude"`
	Longitude           *float64        `json:"longitude"`
	Address             *string         `json:"address"`
	Website             *string         `json:"website"`
	Pic                 interface{}     `json:"pic"`
	ContactEmail        *string         `json:"contact_email"`
	ContactPhone        *string         `json:"contact_phone"`
	Description         *string         `json:"description"`
	CreatedAt           *string         `json:"created_at"`
	DormitoriesCount    int64           `json:"dormitories_count"`
	UsersCount          int64           `json:"users_count"`
	ListingsTotal       int             `json:"listings_total"`
	Listings            []ListingRef    `json:"listings"`
	RecentListings      []RecentListing `json:"recent_listings"`
	CategoriesTotal     int             `json:"categories_total"`
	Categories          []CategoryCount `json:"categories"`
	AverageOrderValue   float64         `json:"average_order_value"`
	AverageDailyUploads float64         `json:"average_daily_uploads"`
}
