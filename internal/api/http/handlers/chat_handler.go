package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/dto"
	"github.com/spec-kit/tracker-service/internal/auth"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// ChatHandler exposes chat room and message endpoints. Every operation
// requires a caller identity.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// ListRooms GET /api/chat/rooms.
func (h *ChatHandler) ListRooms(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	rooms, err := h.service.ListRooms(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rooms})
}

// CreateRoom POST /api/chat/rooms.
func (h *ChatHandler) CreateRoom(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	room, err := h.service.CreateRoom(c.UserContext(), service.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		RoomType:    req.RoomType,
		IsPrivate:   req.IsPrivate,
		CreatedBy:   userID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": room})
}

// GetRoom GET /api/chat/rooms/:roomId.
func (h *ChatHandler) GetRoom(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	room, err := h.service.GetRoom(c.UserContext(), c.Params("roomId"), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": room})
}

// JoinRoom POST /api/chat/rooms/:roomId/join.
func (h *ChatHandler) JoinRoom(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	var req dto.JoinRoomRequest
	_ = c.BodyParser(&req)
	if err := h.service.JoinRoom(c.UserContext(), c.Params("roomId"), userID, req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"joined": true}})
}

// LeaveRoom POST /api/chat/rooms/:roomId/leave.
func (h *ChatHandler) LeaveRoom(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.LeaveRoom(c.UserContext(), c.Params("roomId"), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"left": true}})
}

// ListMessages GET /api/chat/rooms/:roomId/messages.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	if _, err := auth.RequireUserID(c); err != nil {
		return err
	}
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)
	messages, err := h.service.ListMessages(c.UserContext(), c.Params("roomId"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messages})
}

// SendMessage POST /api/chat/rooms/:roomId/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	message, err := h.service.SendMessage(c.UserContext(), c.Params("roomId"), userID, req.Content, req.MessageType, req.ReplyToID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": message})
}

// EditMessage PUT /api/chat/rooms/:roomId/messages/:messageId.
func (h *ChatHandler) EditMessage(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	var req dto.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	message, err := h.service.EditMessage(c.UserContext(), c.Params("messageId"), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": message})
}

// DeleteMessage DELETE /api/chat/rooms/:roomId/messages/:messageId.
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, err := auth.RequireUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteMessage(c.UserContext(), c.Params("messageId"), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
