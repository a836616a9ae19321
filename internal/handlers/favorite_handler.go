package handlers

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add favorites a product. 201 on first insert, 200 when it was already
// favorited.
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.FavoriteRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	created, err := h.favoriteService.Add(p.ID, req.ProductID, requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Product added to favorites",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product is already in favorites",
	})
}

func (h *FavoriteHandler) My(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	products, err := h.favoriteService.My(p.ID)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"products": products})
}
