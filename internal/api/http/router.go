package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/http/handlers"
	"github.com/spec-kit/tracker-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Tickets  *handlers.TicketsHandler
	Comments *handlers.CommentsHandler
	Users    *handlers.UsersHandler
	Chat     *handlers.ChatHandler
	Uploads  *handlers.UploadHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", auth.Identity())

	api.Get("/tickets", cfg.Tickets.List)
	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets/:id", cfg.Tickets.Get)
	api.Patch("/tickets/:id", cfg.Tickets.Update)
	api.Get("/tickets/:id/activities", cfg.Tickets.ListActivities)

	api.Get("/tickets/:id/comments", cfg.Comments.List)
	api.Post("/tickets/:id/comments", cfg.Comments.Create)

	api.Get("/users", cfg.Users.List)
	api.Get("/users/:id/preferences", cfg.Users.GetPreferences)
	api.Put("/users/:id/preferences", cfg.Users.PutPreferences)

	api.Post("/upload", cfg.Uploads.Upload)

	api.Get("/chat/rooms", cfg.Chat.ListRooms)
	api.Post("/chat/rooms", cfg.Chat.CreateRoom)
	api.Get("/chat/rooms/:roomId", cfg.Chat.GetRoom)
	api.Post("/chat/rooms/:roomId/join", cfg.Chat.JoinRoom)
	api.Post("/chat/rooms/:roomId/leave", cfg.Chat.LeaveRoom)
	api.Get("/chat/rooms/:roomId/messages", cfg.Chat.ListMessages)
	api.Post("/chat/rooms/:roomId/messages", cfg.Chat.SendMessage)
	api.Put("/chat/rooms/:roomId/messages/:messageId", cfg.Chat.EditMessage)
	api.Delete("/chat/rooms/:roomId/messages/:messageId", cfg.Chat.DeleteMessage)
}
