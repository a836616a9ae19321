package handlers

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Store(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.StoreEventRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	event, err := h.eventService.Store(p.ID, &req, requestMeta(c))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event recorded successfully",
		"event":   event,
	})
}
