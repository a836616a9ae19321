package services

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminService struct {
	db       *gorm.DB
	products *ProductService
}

func NewAdminService(db *gorm.DB, products *ProductService) *AdminService {
	return &AdminService{db: db, products: products}
}

const defaultAdminPageSize = 15

func pageSize(perPage *int) int {
	if perPage != nil && *perPage > 0 {
		return *perPage
	}
	return defaultAdminPageSize
}

func (s *AdminService) CreateUniversity(req *dto.CreateUniversityRequest) (*models.University, error) {
	fieldErrs := validation.Errors{}

	var count int64
	s.db.Model(&models.University{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		fieldErrs.Add("name", "The name has already been taken.")
	}
	s.db.Model(&models.University{}).Where("domain = ?", req.Domain).Count(&count)
	if count > 0 {
		fieldErrs.Add("domain", "The domain has already been taken.")
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	university := models.University{
		Name:      req.Name,
		Domain:    req.Domain,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}
	if len(req.Pic) > 0 {
		pic, err := json.Marshal(req.Pic)
		if err != nil {
			return nil, err
		}
		university.Pic = datatypes.JSON(pic)
	}

	if err := s.db.Create(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

func (s *AdminService) UpdateUniversity(id uint, req *dto.UpdateUniversityRequest) (*models.University, error) {
	var university models.University
	if err := s.db.First(&university, id).Error; err != nil {
		return nil, ErrUniversityNotFound
	}

	fieldErrs := validation.Errors{}
	var count int64
	if req.Name != nil && *req.Name != university.Name {
		s.db.Model(&models.University{}).Where("name = ? AND id <> ?", *req.Name, id).Count(&count)
		if count > 0 {
			fieldErrs.Add("name", "The name has already been taken.")
		}
	}
	if req.Domain != nil && *req.Domain != university.Domain {
		s.db.Model(&models.University{}).Where("domain = ? AND id <> ?", *req.Domain, id).Count(&count)
		if count > 0 {
			fieldErrs.Add("domain", "The domain has already been taken.")
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	if req.Name != nil {
		university.Name = *req.Name
	}
	if req.Domain != nil {
		university.Domain = *req.Domain
	}
	if req.Latitude != nil {
		university.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		university.Longitude = req.Longitude
	}
	if req.Address != nil {
		university.Address = req.Address
	}
	if req.Website != nil {
		university.Website = req.Website
	}
	if req.ContactEmail != nil {
		university.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		university.ContactPhone = req.ContactPhone
	}
	if req.Description != nil {
		university.Description = req.Description
	}
	if req.Pic != nil {
		pic, err := json.Marshal(req.Pic)
		if err != nil {
			return nil, err
		}
		university.Pic = datatypes.JSON(pic)
	}

	if err := s.db.Save(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

// ListUniversities pages the admin listing with dormitory and user counts
// computed as correlated subqueries.
func (s *AdminService) ListUniversities(page int, perPage *int) ([]dto.UniversityRow, *dto.Page, error) {
	size := pageSize(perPage)

	var total int64
	if err := s.db.Model(&models.University{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	type row struct {
		ID               uint
		Name             string
		Address          *string
		CreatedAt        time.Time
		DormitoriesCount int64
		UsersCount       int64
	}
	raw := []row{}
	err := s.db.Model(&models.University{}).
		Select(`universities.id, universities.name, universities.address, universities.created_at,
			(SELECT COUNT(*) FROM dormitories WHERE dormitories.university_id = universities.id) AS dormitories_count,
			(SELECT COUNT(*) FROM users WHERE users.dormitory_id IN (SELECT id FROM dormitories WHERE dormitories.university_id = universities.id)) AS users_count`).
		Order("universities.id").
		Offset((page - 1) * size).Limit(size).
		Scan(&raw).Error
	if err != nil {
		return nil, nil, err
	}

	rows := make([]dto.UniversityRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, dto.UniversityRow{
			ID:               r.ID,
			Name:             r.Name,
			Address:          r.Address,
			CreatedAt:        r.CreatedAt.Format("2006-01-02"),
			DormitoriesCount: r.DormitoriesCount,
			UsersCount:       r.UsersCount,
		})
	}

	pageInfo := &dto.Page{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}
	return rows, pageInfo, nil
}

func (s *AdminService) CreateDormitory(req *dto.CreateDormitoryRequest) (*models.Dormitory, error) {
	var university models.University
	if err := s.db.Where("name = ?", req.UniversityName).First(&university).Error; err != nil {
		return nil, ErrUniversityNotFound
	}

	fieldErrs := validation.Errors{}
	var count int64
	s.db.Model(&models.Dormitory{}).Where("dormitory_name = ?", req.DormitoryName).Count(&count)
	if count > 0 {
		fieldErrs.Add("dormitory_name", "The dormitory_name has already been taken.")
	}
	s.db.Model(&models.Dormitory{}).Where("domain = ?", req.Domain).Count(&count)
	if count > 0 {
		fieldErrs.Add("domain", "The domain has already been taken.")
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	dormitory := models.Dormitory{
		DormitoryName: req.DormitoryName,
		Domain:        req.Domain,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Address:       req.Address,
		IsActive:      true,
		UniversityID:  university.ID,
	}
	if req.IsActive != nil {
		dormitory.IsActive = *req.IsActive
	}

	if err := s.db.Create(&dormitory).Error; err != nil {
		return nil, err
	}
	return &dormitory, nil
}

// DormitoriesByUniversityName resolves the university by its exact name.
func (s *AdminService) DormitoriesByUniversityName(name string) (*models.University, []models.Dormitory, error) {
	var university models.University
	if err := s.db.Where("name = ?", name).First(&university).Error; err != nil {
		return nil, nil, ErrUniversityNotFound
	}

	dormitories := []models.Dormitory{}
	if err := s.db.Where("university_id = ?", university.ID).Order("id").Find(&dormitories).Error; err != nil {
		return nil, nil, err
	}
	return &university, dormitories, nil
}

// DormitoryNamesByUniversity returns every dormitory name grouped under its
// university name, for admin form pickers.
func (s *AdminService) DormitoryNamesByUniversity() (map[string][]string, error) {
	type row struct {
		UniversityName string
		DormitoryName  string
	}
	rows := []row{}
	err := s.db.Table("dormitories").
		Joins("JOIN universities ON universities.id = dormitories.university_id").
		Select("universities.name AS university_name, dormitories.dormitory_name").
		Order("universities.name").Order("dormitories.dormitory_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := map[string][]string{}
	for _, r := range rows {
		grouped[r.UniversityName] = append(grouped[r.UniversityName], r.DormitoryName)
	}
	return grouped, nil
}

func (s *AdminService) CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error) {
	fieldErrs := validation.Errors{}

	var count int64
	s.db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		fieldErrs.Add("name", "The name has already been taken.")
	}
	if req.ParentID != nil {
		s.db.Model(&models.Category{}).Where("id = ?", *req.ParentID).Count(&count)
		if count == 0 {
			fieldErrs.Add("parent_id", "The selected parent_id is invalid.")
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	category := models.Category{Name: req.Name, ParentID: req.ParentID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *AdminService) CreateConditionLevel(req *dto.CreateConditionLevelRequest) (*models.ConditionLevel, error) {
	var count int64
	s.db.Model(&models.ConditionLevel{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, &validation.Error{Fields: validation.One("name", "The name has already been taken.")}
	}

	level := models.ConditionLevel{Name: req.Name, Description: req.Description}
	if req.SortOrder != nil {
		level.SortOrder = *req.SortOrder
	}

	if err := s.db.Create(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// ListUsers pages all users joined with their dormitory and university names
// plus per-user listing tallies.
func (s *AdminService) ListUsers(page int, perPage *int) ([]dto.UserRow, *dto.Page, error) {
	size := pageSize(perPage)

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	rows := []dto.UserRow{}
	err := s.db.Table("users").
		Joins("LEFT JOIN dormitories ON dormitories.id = users.dormitory_id").
		Joins("LEFT JOIN universities ON universities.id = dormitories.university_id").
		Joins("LEFT JOIN products ON products.seller_id = users.id AND products.deleted_at IS NULL").
		Select(`users.id, users.full_name, users.email, users.role, users.status, users.profile_picture, users.last_login_at,
			dormitories.dormitory_name, universities.name AS university_name,
			COUNT(products.id) AS product_count,
			COALESCE(SUM(CASE WHEN products.status = 'sold' THEN 1 ELSE 0 END), 0) AS sold_counter`).
		Group("users.id, users.full_name, users.email, users.role, users.status, users.profile_picture, users.last_login_at, dormitories.dormitory_name, universities.name").
		Order("users.id").
		Offset((page - 1) * size).Limit(size).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	pageInfo := &dto.Page{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}
	return rows, pageInfo, nil
}

func (s *AdminService) ShowUser(id uint) (*dto.AdminUserDetail, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	detail := &dto.AdminUserDetail{User: user}

	if user.DormitoryID != nil {
		var dormitory models.Dormitory
		if err := s.db.First(&dormitory, *user.DormitoryID).Error; err == nil {
			detail.DormitoryName = &dormitory.DormitoryName
			var university models.University
			if err := s.db.First(&university, dormitory.UniversityID).Error; err == nil {
				detail.UniversityName = &university.Name
			}
		}
	}

	s.db.Model(&models.Product{}).
		Where("seller_id = ? AND status <> ?", id, models.ProductSold).
		Count(&detail.ListedCount)
	s.db.Model(&models.Product{}).
		Where("seller_id = ? AND status = ?", id, models.ProductSold).
		Count(&detail.SoldCount)

	return detail, nil
}

func (s *AdminService) UpdateUser(id uint, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	fieldErrs := validation.Errors{}
	var count int64
	if req.Username != nil && *req.Username != user.Username {
		s.db.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, id).Count(&count)
		if count > 0 {
			fieldErrs.Add("username", "The username has already been taken.")
		}
	}
	if req.Email != nil && *req.Email != user.Email {
		s.db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count)
		if count > 0 {
			fieldErrs.Add("email", "The email has already been taken.")
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	if req.StudentID != nil {
		user.StudentID = req.StudentID
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Language != nil {
		user.Language = req.Language
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AdminService) SetUserStatus(id uint, status string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.Status != status {
		user.Status = status
		if err := s.db.Save(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// ListProducts pages one seller's products for moderation, soft-deleted rows
// included.
func (s *AdminService) ListProducts(q *dto.AdminProductsQuery, page int) ([]dto.AdminProductCard, *dto.Page, error) {
	size := pageSize(q.PerPage)

	var total int64
	if err := s.db.Unscoped().Model(&models.Product{}).Where("seller_id = ?", q.UserID).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	products := []models.Product{}
	if err := s.db.Unscoped().Where("seller_id = ?", q.UserID).Order("id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&products).Error; err != nil {
		return nil, nil, err
	}

	imagesByProduct, tagsByProduct, err := s.products.attachments(productIDs(products))
	if err != nil {
		return nil, nil, err
	}

	cards := make([]dto.AdminProductCard, 0, len(products))
	for i := range products {
		p := &products[i]

		var imageURL *string
		if images := imagesByProduct[p.ID]; len(images) > 0 {
			url := images[0].ImageURL
			imageURL = &url
		}

		tags := tagsByProduct[p.ID]
		if tags == nil {
			tags = []dto.TagRef{}
		}

		cards = append(cards, dto.AdminProductCard{
			ID:        p.ID,
			Title:     p.Title,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
			ImageURL:  imageURL,
			Tags:      tags,
		})
	}

	pageInfo := &dto.Page{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}
	return cards, pageInfo, nil
}

func (s *AdminService) ShowProduct(id uint) (*dto.AdminProductDetail, error) {
	var product models.Product
	if err := s.db.Unscoped().First(&product, id).Error; err != nil {
		return nil, ErrProductNotFound
	}

	base, err := s.products.detail(&product)
	if err != nil {
		return nil, err
	}

	detail := &dto.AdminProductDetail{ProductDetail: *base}

	s.db.Model(&models.BehavioralEvent{}).
		Where("product_id = ? AND event_type = ?", id, models.EventView).
		Count(&detail.ViewCount)
	s.db.Model(&models.BehavioralEvent{}).
		Where("product_id = ? AND event_type = ?", id, models.EventClick).
		Count(&detail.ClickCount)
	s.db.Model(&models.BehavioralEvent{}).
		Where("product_id = ? AND event_type = ?", id, models.EventFavorite).
		Count(&detail.FavoriteCount)

	return detail, nil
}

// BlockProduct pulls a listing from the marketplace and records who acted
// and why.
func (s *AdminService) BlockProduct(adminID, productID uint, req *dto.BlockProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	product.Status = models.ProductBlocked
	product.ModifiedBy = &adminID
	product.ModificationReason = &req.Reason
	if err := s.db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ShowUniversityDashboard aggregates one university's marketplace activity:
// listing totals, category breakdown, recent listings, and the two rolling
// averages.
func (s *AdminService) ShowUniversityDashboard(id uint) (*dto.UniversityDashboard, error) {
	var university models.University
	if err := s.db.First(&university, id).Error; err != nil {
		return nil, ErrUniversityNotFound
	}

	dash := &dto.UniversityDashboard{
		ID:           university.ID,
		Name:         university.Name,
		Domain:       university.Domain,
		Latitude:     university.Latitude,
		Longitude:    university.Longitude,
		Address:      university.Address,
		Website:      university.Website,
		ContactEmail: university.ContactEmail,
		ContactPhone: university.ContactPhone,
		Description:  university.Description,
	}

	createdAt := university.CreatedAt.Format("2006-01-02")
	dash.CreatedAt = &createdAt

	if len(university.Pic) > 0 {
		var pic interface{}
		if err := json.Unmarshal(university.Pic, &pic); err == nil {
			dash.Pic = pic
		}
	}

	s.db.Model(&models.Dormitory{}).Where("university_id = ?", id).Count(&dash.DormitoriesCount)
	s.db.Model(&models.User{}).
		Where("dormitory_id IN (?)", s.db.Model(&models.Dormitory{}).Select("id").Where("university_id = ?", id)).
		Count(&dash.UsersCount)

	products := []models.Product{}
	if err := s.db.Where("dormitory_id IN (?)",
		s.db.Model(&models.Dormitory{}).Select("id").Where("university_id = ?", id)).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}

	dash.ListingsTotal = len(products)
	dash.Listings = make([]dto.ListingRef, 0, len(products))
	for i := range products {
		dash.Listings = append(dash.Listings, dto.ListingRef{ID: products[i].ID, Title: products[i].Title})
	}

	sellerNames, err := s.sellerNames(products)
	if err != nil {
		return nil, err
	}

	recent := make([]models.Product, len(products))
	copy(recent, products)
	sort.Slice(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	dash.RecentListings = []dto.RecentListing{}
	for i := 0; i < len(recent) && i < 4; i++ {
		p := &recent[i]
		date := p.CreatedAt.Format("2006.01.02")
		dash.RecentListings = append(dash.RecentListings, dto.RecentListing{
			ID:         p.ID,
			Title:      p.Title,
			SellerName: sellerNames[p.SellerID],
			Date:       &date,
		})
	}

	categories, err := s.categoryCounts(products)
	if err != nil {
		return nil, err
	}
	dash.Categories = categories
	dash.CategoriesTotal = len(categories)

	dash.AverageOrderValue = averageListingPrice(products)
	dash.AverageDailyUploads = averageDailyUploads(products, time.Now())

	return dash, nil
}

func (s *AdminService) sellerNames(products []models.Product) (map[uint]string, error) {
	ids := map[uint]bool{}
	for i := range products {
		ids[products[i].SellerID] = true
	}

	names := map[uint]string{}
	if len(ids) == 0 {
		return names, nil
	}

	users := []models.User{}
	if err := s.db.Where("id IN ?", keys(ids)).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		names[users[i].ID] = users[i].FullName
	}
	return names, nil
}

func (s *AdminService) categoryCounts(products []models.Product) ([]dto.CategoryCount, error) {
	byCategory := map[uint]int64{}
	for i := range products {
		byCategory[products[i].CategoryID]++
	}

	counts := []dto.CategoryCount{}
	if len(byCategory) == 0 {
		return counts, nil
	}

	categories := []models.Category{}
	if err := s.db.Where("id IN ?", keys(boolSet(byCategory))).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	for i := range categories {
		c := &categories[i]
		counts = append(counts, dto.CategoryCount{ID: c.ID, Name: c.Name, ProductCount: byCategory[c.ID]})
	}
	return counts, nil
}

func boolSet(m map[uint]int64) map[uint]bool {
	set := make(map[uint]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}

// averageListingPrice is the mean price across all listings regardless of
// status, 0.0 when the university has none.
func averageListingPrice(products []models.Product) float64 {
	if len(products) == 0 {
		return 0.0
	}
	var sum float64
	for i := range products {
		sum += products[i].Price
	}
	return round2(sum / float64(len(products)))
}

// averageDailyUploads divides the listing count by the span in days since
// the earliest listing, inclusive of today.
func averageDailyUploads(products []models.Product, now time.Time) float64 {
	if len(products) == 0 {
		return 0.0
	}

	earliest := products[0].CreatedAt
	for i := range products {
		if products[i].CreatedAt.Before(earliest) {
			earliest = products[i].CreatedAt
		}
	}

	span := uploadSpanDays(earliest, now)
	return round2(float64(len(products)) / float64(span))
}

func uploadSpanDays(first, now time.Time) int {
	days := int(now.Sub(first).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
