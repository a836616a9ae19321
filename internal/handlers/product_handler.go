package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.CreateProductRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	input := imageInput(c, req.PrimaryImageIndex, req.ImageURLs, req.ImageThumbnailURLs)

	result, err := h.productService.Create(p.User, &req, input)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": result.Product,
		"images":  result.Images,
		"tag_ids": result.TagIDs,
	})
}

func (h *ProductHandler) My(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	products, err := h.productService.MyProducts(p.ID)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) MyCards(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var q dto.ProductCardsQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	page := 1
	if q.Page != nil {
		page = *q.Page
	}
	pageSize := 20
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}

	cards, pageInfo, err := h.productService.MyProductCards(p.ID, page, pageSize)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"products":   cards,
		"pagination": pageInfo,
	})
}

func (h *ProductHandler) Show(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	detail, err := h.productService.Get(p.ID, uint(id), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"product": detail})
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	view, tagIDs, err := h.productService.GetForEdit(p.ID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"product": view,
		"tag_ids": tagIDs,
	})
}

func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	product, err := h.productService.MarkSold(p.ID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product marked as sold",
		"product": product,
	})
}

func (h *ProductHandler) UploadImages(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	var req dto.UploadImagesRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	input := imageInput(c, req.PrimaryImageIndex, req.ImageURLs, req.ImageThumbnailURLs)

	images, err := h.productService.UploadImages(p.ID, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return notFound(c, "Product not found.")
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You can only upload images to your own products.",
			})
		default:
			return fail(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Images uploaded successfully",
		"images":  images,
	})
}

func (h *ProductHandler) ByTag(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	tag, products, err := h.productService.ByTagName(p.ID, c.Params("name"), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return notFound(c, "Tag not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"tag":      tag,
		"products": products,
	})
}

func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	category, products, err := h.productService.ByCategoryName(p.ID, c.Params("name"), requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return notFound(c, "Category not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"category": category,
		"products": products,
	})
}

// imageInput merges the parsed URL fields with any multipart file parts into
// one polymorphic image payload.
func imageInput(c *fiber.Ctx, primaryIndex *int, urls, thumbURLs []string) *services.ImageInput {
	input := &services.ImageInput{URLs: urls, ThumbnailURLs: thumbURLs}
	if primaryIndex != nil {
		input.PrimaryIndex = *primaryIndex
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		input.Files = formFiles(form, "images")
		input.ThumbnailFiles = formFiles(form, "thumbnail_images")
	}

	return input
}

// formFiles accepts both the bare key and the PHP-style key[] clients send.
func formFiles(form *multipart.Form, key string) []*multipart.FileHeader {
	if files := form.File[key]; len(files) > 0 {
		return files
	}
	return form.File[key+"[]"]
}
