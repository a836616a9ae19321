package handlers

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// MetaOptions bundles the reference data product forms need in one call.
func (h *CatalogHandler) MetaOptions(c *fiber.Ctx) error {
	categories, err := h.catalogService.Categories()
	if err != nil {
		return serverError(c, err)
	}
	levels, err := h.catalogService.ConditionLevels()
	if err != nil {
		return serverError(c, err)
	}
	tags, err := h.catalogService.Tags()
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"categories":       categories,
		"condition_levels": levels,
		"tags":             tags,
	})
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalogService.Categories()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *CatalogHandler) ConditionLevels(c *fiber.Ctx) error {
	levels, err := h.catalogService.ConditionLevels()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"condition_levels": levels})
}

func (h *CatalogHandler) Tags(c *fiber.Ctx) error {
	tags, err := h.catalogService.Tags()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

func (h *CatalogHandler) CreateTag(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	tag, err := h.catalogService.CreateTag(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Tag created successfully",
		"tag":     tag,
	})
}

func (h *CatalogHandler) Dormitories(c *fiber.Ctx) error {
	dormitories, err := h.catalogService.Dormitories()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"dormitories": dormitories})
}

// DormitoriesByUniversity lists the dormitories of the caller's own
// university.
func (h *CatalogHandler) DormitoriesByUniversity(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	universityID, dormitories, err := h.catalogService.DormitoriesByUserUniversity(p.User)
	if err != nil {
		if errors.Is(err, services.ErrDormitoryNotFound) {
			return notFound(c, "Dormitory not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"university_id": universityID,
		"dormitories":   dormitories,
	})
}
