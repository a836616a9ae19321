package services

import (
	"fmt"
	"math"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/storage"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"gorm.io/gorm"
)

type ProductService struct {
	db     *gorm.DB
	events *EventService
	store  *storage.Storage
}

func NewProductService(db *gorm.DB, events *EventService, store *storage.Storage) *ProductService {
	return &ProductService{db: db, events: events, store: store}
}

// CreateResult bundles the rows written by one product creation.
type CreateResult struct {
	Product *models.Product
	Images  []models.ProductImage
	TagIDs  []uint
}

// Create validates references, normalizes the image input, and writes the
// product, its images, and its tag links in one transaction.
func (s *ProductService) Create(user *models.User, req *dto.CreateProductRequest, input *ImageInput) (*CreateResult, error) {
	fieldErrs := validation.Errors{}

	var count int64
	s.db.Model(&models.Category{}).Where("id = ?", req.CategoryID).Count(&count)
	if count == 0 {
		fieldErrs.Add("category_id", "The selected category_id is invalid.")
	}

	s.db.Model(&models.ConditionLevel{}).Where("id = ?", req.ConditionLevelID).Count(&count)
	if count == 0 {
		fieldErrs.Add("condition_level_id", "The selected condition_level_id is invalid.")
	}

	// The seller's profile dormitory wins; the field is only required when
	// the profile has none.
	dormitoryID := uint(0)
	if user.DormitoryID != nil {
		dormitoryID = *user.DormitoryID
	} else if req.DormitoryID == nil {
		fieldErrs.Add("dormitory_id", "The dormitory_id field is required.")
	} else {
		s.db.Model(&models.Dormitory{}).Where("id = ?", *req.DormitoryID).Count(&count)
		if count == 0 {
			fieldErrs.Add("dormitory_id", "The selected dormitory_id is invalid.")
		} else {
			dormitoryID = *req.DormitoryID
		}
	}

	tagIDs := dedupe(req.TagIDs)
	if len(tagIDs) > 0 {
		s.db.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count)
		if count != int64(len(tagIDs)) {
			fieldErrs.Add("tag_ids", "The selected tag_ids is invalid.")
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &validation.Error{Fields: fieldErrs}
	}

	if verr := input.Normalize(); verr != nil {
		return nil, verr
	}

	result := &CreateResult{TagIDs: tagIDs}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		product := models.Product{
			SellerID:         user.ID,
			DormitoryID:      dormitoryID,
			CategoryID:       req.CategoryID,
			ConditionLevelID: req.ConditionLevelID,
			Title:            req.Title,
			Description:      req.Description,
			Price:            req.Price,
			Status:           models.ProductAvailable,
		}
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		result.Product = &product

		refs, err := s.resolveRefs(input, user.ID, product.ID)
		if err != nil {
			return err
		}

		for _, ref := range refs {
			image := models.ProductImage{
				ProductID:         product.ID,
				ImageURL:          ref.URL,
				ImageThumbnailURL: ref.ThumbnailURL,
				IsPrimary:         ref.IsPrimary,
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}
			result.Images = append(result.Images, image)
		}

		for _, tagID := range tagIDs {
			if err := tx.Create(&models.ProductTag{ProductID: product.ID, TagID: tagID}).Error; err != nil {
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Images == nil {
		result.Images = []models.ProductImage{}
	}
	return result, nil
}

// UploadImages appends a new image batch to an owned product. Existing rows
// stay but lose their primary flag; the clear-then-set runs in one
// transaction so readers never observe two primaries.
func (s *ProductService) UploadImages(userID, productID uint, input *ImageInput) ([]models.ProductImage, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	if product.SellerID != userID {
		return nil, ErrNotOwner
	}

	input.Required = true
	if verr := input.Normalize(); verr != nil {
		return nil, verr
	}

	created := []models.ProductImage{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Update("is_primary", false).Error; err != nil {
			return fmt.Errorf("failed to reset primary images: %w", err)
		}

		refs, err := s.resolveRefs(input, product.SellerID, product.ID)
		if err != nil {
			return err
		}

		for _, ref := range refs {
			image := models.ProductImage{
				ProductID:         product.ID,
				ImageURL:          ref.URL,
				ImageThumbnailURL: ref.ThumbnailURL,
				IsPrimary:         ref.IsPrimary,
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create product image: %w", err)
			}
			created = append(created, image)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// resolveRefs turns the normalized input into final ImageRefs, storing
// uploaded files under products/<seller>/<product>.
func (s *ProductService) resolveRefs(input *ImageInput, sellerID, productID uint) ([]ImageRef, error) {
	if input.hasURLs() {
		return input.URLRefs(), nil
	}

	dir := fmt.Sprintf("products/%d/%d", sellerID, productID)
	refs := make([]ImageRef, 0, len(input.Files))

	for i, file := range input.Files {
		path, err := s.store.Save(dir, file)
		if err != nil {
			return nil, err
		}

		ref := ImageRef{URL: s.store.PublicURL(path), IsPrimary: i == input.PrimaryIndex}

		if len(input.ThumbnailFiles) > 0 && input.ThumbnailFiles[i] != nil {
			thumbPath, err := s.store.Save(dir+"/thumbnails", input.ThumbnailFiles[i])
			if err != nil {
				return nil, err
			}
			thumbURL := s.store.PublicURL(thumbPath)
			ref.ThumbnailURL = &thumbURL
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

func (s *ProductService) MyProducts(userID uint) ([]dto.ProductView, error) {
	products := []models.Product{}
	if err := s.db.Where("seller_id = ?", userID).Order("id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return s.views(products)
}

// MyProductCards is the paginated compact listing for the seller's own
// dashboard.
func (s *ProductService) MyProductCards(userID uint, page, pageSize int) ([]dto.ProductCard, *dto.Page, error) {
	var total int64
	if err := s.db.Model(&models.Product{}).Where("seller_id = ?", userID).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	products := []models.Product{}
	if err := s.db.Where("seller_id = ?", userID).Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, nil, err
	}

	imagesByProduct, _, err := s.attachments(productIDs(products))
	if err != nil {
		return nil, nil, err
	}

	dorms, err := s.dormitoryRefs(products)
	if err != nil {
		return nil, nil, err
	}

	categories, levels, err := s.referenceMaps(products)
	if err != nil {
		return nil, nil, err
	}

	cards := make([]dto.ProductCard, 0, len(products))
	for i := range products {
		p := &products[i]

		var thumb *string
		if images := imagesByProduct[p.ID]; len(images) > 0 {
			primary := images[0]
			if primary.ImageThumbnailURL != nil {
				thumb = primary.ImageThumbnailURL
			} else {
				url := primary.ImageURL
				thumb = &url
			}
		}

		cards = append(cards, dto.ProductCard{
			ID:                p.ID,
			Title:             p.Title,
			Price:             p.Price,
			Status:            p.Status,
			CreatedAt:         p.CreatedAt,
			ImageThumbnailURL: thumb,
			Dormitory:         dorms[p.DormitoryID],
			Category:          categories[p.CategoryID],
			ConditionLevel:    levels[p.ConditionLevelID],
		})
	}

	pageInfo := &dto.Page{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
	return cards, pageInfo, nil
}

// Get fetches a non-deleted product with its denormalized attachments and
// records a best-effort click event for the viewer.
func (s *ProductService) Get(viewerID, productID uint, meta RequestMeta) (*dto.ProductDetail, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	detail, err := s.detail(&product)
	if err != nil {
		return nil, err
	}

	s.events.RecordForProduct(viewerID, models.EventClick, &product, meta)

	return detail, nil
}

// GetForEdit is the owner-scoped variant of Get; no event is recorded.
func (s *ProductService) GetForEdit(userID, productID uint) (*dto.ProductView, []uint, error) {
	var product models.Product
	if err := s.db.Where("seller_id = ?", userID).First(&product, productID).Error; err != nil {
		return nil, nil, ErrProductNotFound
	}

	views, err := s.views([]models.Product{product})
	if err != nil {
		return nil, nil, err
	}

	view := views[0]
	tagIDs := make([]uint, 0, len(view.Tags))
	for _, t := range view.Tags {
		tagIDs = append(tagIDs, t.ID)
	}

	return &view, tagIDs, nil
}

// MarkSold transitions an owned product to sold; already-sold is a no-op.
func (s *ProductService) MarkSold(userID, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("seller_id = ?", userID).First(&product, productID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	if product.Status != models.ProductSold {
		product.Status = models.ProductSold
		if err := s.db.Save(&product).Error; err != nil {
			return nil, err
		}
	}

	return &product, nil
}

// ByTagName lists non-deleted products carrying the tag, newest first, and
// bulk-records one view event per returned product.
func (s *ProductService) ByTagName(userID uint, tagName string, meta RequestMeta) (*models.Tag, []dto.ProductView, error) {
	var tag models.Tag
	if err := s.db.Where("name = ?", tagName).First(&tag).Error; err != nil {
		return nil, nil, ErrTagNotFound
	}

	var ids []uint
	if err := s.db.Model(&models.ProductTag{}).
		Where("tag_id = ?", tag.ID).
		Distinct("product_id").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, nil, err
	}

	products := []models.Product{}
	if len(ids) > 0 {
		if err := s.db.Where("id IN ?", ids).Order("id DESC").Find(&products).Error; err != nil {
			return nil, nil, err
		}
	}

	s.events.RecordForProducts(userID, models.EventView, products, meta)

	views, err := s.views(products)
	if err != nil {
		return nil, nil, err
	}
	return &tag, views, nil
}

// ByCategoryName mirrors ByTagName for category lookups.
func (s *ProductService) ByCategoryName(userID uint, categoryName string, meta RequestMeta) (*models.Category, []dto.ProductView, error) {
	var category models.Category
	if err := s.db.Where("name = ?", categoryName).First(&category).Error; err != nil {
		return nil, nil, ErrCategoryNotFound
	}

	products := []models.Product{}
	if err := s.db.Where("category_id = ?", category.ID).Order("id DESC").Find(&products).Error; err != nil {
		return nil, nil, err
	}

	s.events.RecordForProducts(userID, models.EventView, products, meta)

	views, err := s.views(products)
	if err != nil {
		return nil, nil, err
	}
	return &category, views, nil
}

// attachments batches the image and tag lookups for a result set: one IN
// query for images, one joined query for tags, grouped by product here
// instead of a query per row.
func (s *ProductService) attachments(ids []uint) (map[uint][]models.ProductImage, map[uint][]dto.TagRef, error) {
	imagesByProduct := map[uint][]models.ProductImage{}
	tagsByProduct := map[uint][]dto.TagRef{}

	if len(ids) == 0 {
		return imagesByProduct, tagsByProduct, nil
	}

	images := []models.ProductImage{}
	if err := s.db.Where("product_id IN ?", ids).
		Order("is_primary DESC").Order("id").
		Find(&images).Error; err != nil {
		return nil, nil, err
	}
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}

	type tagRow struct {
		ProductID uint
		ID        uint
		Name      string
	}
	rows := []tagRow{}
	if err := s.db.Table("product_tags").
		Joins("JOIN tags ON product_tags.tag_id = tags.id").
		Where("product_tags.product_id IN ?", ids).
		Select("product_tags.product_id, tags.id, tags.name").
		Order("tags.id").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		tagsByProduct[row.ProductID] = append(tagsByProduct[row.ProductID], dto.TagRef{ID: row.ID, Name: row.Name})
	}

	return imagesByProduct, tagsByProduct, nil
}

func (s *ProductService) dormitoryRefs(products []models.Product) (map[uint]*dto.DormitoryRef, error) {
	refs := map[uint]*dto.DormitoryRef{}
	ids := map[uint]bool{}
	for i := range products {
		ids[products[i].DormitoryID] = true
	}
	if len(ids) == 0 {
		return refs, nil
	}

	dormIDs := make([]uint, 0, len(ids))
	for id := range ids {
		dormIDs = append(dormIDs, id)
	}

	dorms := []models.Dormitory{}
	if err := s.db.Where("id IN ?", dormIDs).Find(&dorms).Error; err != nil {
		return nil, err
	}
	for i := range dorms {
		d := &dorms[i]
		refs[d.ID] = &dto.DormitoryRef{ID: d.ID, DormitoryName: d.DormitoryName, UniversityID: d.UniversityID}
	}
	return refs, nil
}

func (s *ProductService) referenceMaps(products []models.Product) (map[uint]*models.Category, map[uint]*models.ConditionLevel, error) {
	categoryIDs := map[uint]bool{}
	levelIDs := map[uint]bool{}
	for i := range products {
		categoryIDs[products[i].CategoryID] = true
		levelIDs[products[i].ConditionLevelID] = true
	}

	categories := map[uint]*models.Category{}
	if len(categoryIDs) > 0 {
		rows := []models.Category{}
		if err := s.db.Where("id IN ?", keys(categoryIDs)).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			categories[rows[i].ID] = &rows[i]
		}
	}

	levels := map[uint]*models.ConditionLevel{}
	if len(levelIDs) > 0 {
		rows := []models.ConditionLevel{}
		if err := s.db.Where("id IN ?", keys(levelIDs)).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for i := range rows {
			levels[rows[i].ID] = &rows[i]
		}
	}

	return categories, levels, nil
}

func (s *ProductService) views(products []models.Product) ([]dto.ProductView, error) {
	imagesByProduct, tagsByProduct, err := s.attachments(productIDs(products))
	if err != nil {
		return nil, err
	}

	dorms, err := s.dormitoryRefs(products)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ProductView, 0, len(products))
	for i := range products {
		p := products[i]
		images := imagesByProduct[p.ID]
		if images == nil {
			images = []models.ProductImage{}
		}
		tags := tagsByProduct[p.ID]
		if tags == nil {
			tags = []dto.TagRef{}
		}
		views = append(views, dto.ProductView{
			Product:   p,
			Dormitory: dorms[p.DormitoryID],
			Images:    images,
			Tags:      tags,
		})
	}
	return views, nil
}

func (s *ProductService) detail(product *models.Product) (*dto.ProductDetail, error) {
	views, err := s.views([]models.Product{*product})
	if err != nil {
		return nil, err
	}

	detail := &dto.ProductDetail{ProductView: views[0]}

	var category models.Category
	if err := s.db.First(&category, product.CategoryID).Error; err == nil {
		detail.Category = &category
	}

	var level models.ConditionLevel
	if err := s.db.First(&level, product.ConditionLevelID).Error; err == nil {
		detail.ConditionLevel = &level
	}

	var seller models.User
	if err := s.db.First(&seller, product.SellerID).Error; err == nil {
		detail.Seller = &dto.SellerRef{
			ID:             seller.ID,
			FullName:       seller.FullName,
			Username:       seller.Username,
			ProfilePicture: seller.ProfilePicture,
		}
	}

	return detail, nil
}

func productIDs(products []models.Product) []uint {
	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	return ids
}

func dedupe(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func keys(set map[uint]bool) []uint {
	out := make([]uint, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
