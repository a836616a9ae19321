package handlers

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var req dto.SendMessageRequest
	if resp, ok := parseBody(c, &req); !ok {
		return resp
	}

	message, conversation, err := h.messageService.Send(p.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfMessage):
			return failValidation(c, map[string][]string{
				"receiver_id": {"You cannot send a message to yourself."},
			})
		case errors.Is(err, services.ErrReceiverNotFound):
			return notFound(c, "Receiver not found.")
		default:
			return serverError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Message sent successfully",
		"data":         message,
		"conversation": conversation,
	})
}

func (h *MessageHandler) My(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)

	var q dto.MyMessagesQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	messages, otherUser, err := h.messageService.My(p.ID, &q)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConversationNotFound):
			return notFound(c, "Conversation not found.")
		case errors.Is(err, services.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You are not part of this conversation.",
			})
		default:
			return serverError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"other_user": otherUser,
	})
}

func (h *MessageHandler) All(c *fiber.Ctx) error {
	var q dto.AdminMessagesQuery
	if resp, ok := parseQuery(c, &q); !ok {
		return resp
	}

	messages, err := h.messageService.All(&q)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}
