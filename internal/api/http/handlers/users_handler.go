package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/dto"
	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/presence"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// UsersHandler serves the user directory and per-user preferences.
type UsersHandler struct {
	users       repository.UserRepository
	preferences *service.PreferenceService
	presence    *presence.Tracker
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository, preferences *service.PreferenceService, tracker *presence.Tracker) *UsersHandler {
	return &UsersHandler{users: users, preferences: preferences, presence: tracker}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		info := h.presence.Lookup(c.UserContext(), user.ID)
		items = append(items, dto.UserResponse{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Avatar:   user.Avatar,
			IsOnline: info.Online,
			LastSeen: info.LastSeen,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetPreferences GET /api/users/:id/preferences.
func (h *UsersHandler) GetPreferences(c *fiber.Ctx) error {
	prefs, err := h.preferences.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PreferencesPayload{
		Theme:       prefs.Theme,
		DefaultPage: prefs.DefaultPage,
		PageSize:    prefs.PageSize,
	}})
}

// PutPreferences PUT /api/users/:id/preferences.
func (h *UsersHandler) PutPreferences(c *fiber.Ctx) error {
	var req dto.PreferencesPayload
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	prefs := domain.Preferences{
		Theme:       req.Theme,
		DefaultPage: req.DefaultPage,
		PageSize:    req.PageSize,
	}
	if err := h.preferences.Save(c.UserContext(), c.Params("id"), prefs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": req})
}
