package handlers

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Test is a reachability probe behind the admin guard.
func (h *AdminHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Admin API is reachable",
	})
}

func (h *AdminHandler) CreateUniversity(c *fiber.Ctx) error {
	var req dto.CreateUniversityRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	university, err := h.adminService.CreateUniversity(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "University created successfully",
		"university": university,
	})
}

func (h *AdminHandler) UpdateUniversity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "University not found.")
	}

	var req dto.UpdateUniversityRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	university, err := h.adminService.UpdateUniversity(uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return notFound(c, "University not found.")
		}
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "University updated successfully",
		"university": university,
	})
}

func (h *AdminHandler) ListUniversities(c *fiber.Ctx) error {
	var q dto.PageQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	rows, pageInfo, err := h.adminService.ListUniversities(c.QueryInt("page", 1), q.PerPage)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"universities": rows,
		"pagination":   pageInfo,
	})
}

func (h *AdminHandler) UniversityDashboard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "University not found.")
	}

	dashboard, err := h.adminService.ShowUniversityDashboard(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return notFound(c, "University not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"university": dashboard})
}

func (h *AdminHandler) CreateDormitory(c *fiber.Ctx) error {
	var req dto.CreateDormitoryRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	dormitory, err := h.adminService.CreateDormitory(&req)
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return notFound(c, "University not found.")
		}
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Dormitory created successfully",
		"dormitory": dormitory,
	})
}

func (h *AdminHandler) DormitoriesByUniversity(c *fiber.Ctx) error {
	name := c.Query("university_name")
	if name == "" {
		return failValidation(c, map[string][]string{
			"university_name": {"The university_name field is required."},
		})
	}

	university, dormitories, err := h.adminService.DormitoriesByUniversityName(name)
	if err != nil {
		if errors.Is(err, services.ErrUniversityNotFound) {
			return notFound(c, "University not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"university":  university,
		"dormitories": dormitories,
	})
}

func (h *AdminHandler) DormitoryUniversityNames(c *fiber.Ctx) error {
	grouped, err := h.adminService.DormitoryNamesByUniversity()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"universities": grouped})
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	category, err := h.adminService.CreateCategory(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

func (h *AdminHandler) CreateConditionLevel(c *fiber.Ctx) error {
	var req dto.CreateConditionLevelRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	level, err := h.adminService.CreateConditionLevel(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Condition level created successfully",
		"condition_level": level,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var q dto.PageQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	rows, pageInfo, err := h.adminService.ListUsers(c.QueryInt("page", 1), q.PerPage)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":      rows,
		"pagination": pageInfo,
	})
}

func (h *AdminHandler) ShowUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "User not found.")
	}

	detail, err := h.adminService.ShowUser(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"user": detail})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "User not found.")
	}

	var req dto.AdminUpdateUserRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	user, err := h.adminService.UpdateUser(uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found.")
		}
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "User updated successfully",
		"user":       user,
		"updated_at": user.UpdatedAt.Format("2006/01/02 15:04"),
	})
}

func (h *AdminHandler) ActivateUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, models.StatusActive, "User activated successfully")
}

func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, models.StatusInactive, "User deactivated successfully")
}

func (h *AdminHandler) setUserStatus(c *fiber.Ctx, status, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "User not found.")
	}

	user, err := h.adminService.SetUserStatus(uint(id), status)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}

func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	var q dto.AdminProductsQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	cards, pageInfo, err := h.adminService.ListProducts(&q, c.QueryInt("page", 1))
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"products":   cards,
		"pagination": pageInfo,
	})
}

func (h *AdminHandler) ShowProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	detail, err := h.adminService.ShowProduct(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"product": detail})
}

func (h *AdminHandler) BlockProduct(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Product not found.")
	}

	var req dto.BlockProductRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	product, err := h.adminService.BlockProduct(p.ID, uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product blocked successfully",
		"product": product,
	})
}
