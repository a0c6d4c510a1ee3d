package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/dto"
	"github.com/spec-kit/tracker-service/internal/auth"
	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/listview"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	opts := parseListQuery(c)
	page, err := h.service.ListTickets(c.UserContext(), opts)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ticketResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.ListMeta{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	reporterID := req.UserID
	if reporterID == "" {
		reporterID = auth.UserID(c)
	}
	if reporterID == "" {
		return util.NewUnauthorized("user identity required")
	}

	input := service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ObserverIDs: req.ObserverIDs,
	}
	if req.Details != nil {
		input.Details = domain.TicketDetails{
			Content:        req.Details.Content,
			ExecutorID:     req.Details.ExecutorID,
			Customer:       req.Details.Customer,
			StartDate:      req.Details.StartDate,
			EndDate:        req.Details.EndDate,
			Cost:           req.Details.Cost,
			AdditionalCost: req.Details.AdditionalCost,
			Notes:          req.Details.Notes,
		}
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), reporterID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	actingUserID := req.UserID
	if actingUserID == "" {
		actingUserID = auth.UserID(c)
	}
	if actingUserID == "" {
		return util.NewUnauthorized("user identity required")
	}

	patch := service.TicketPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ObserverIDs: req.ObserverIDs,
	}
	if req.Details != nil {
		patch.Details = &service.DetailsPatch{
			Content:        req.Details.Content,
			ExecutorID:     req.Details.ExecutorID,
			Customer:       req.Details.Customer,
			StartDate:      req.Details.StartDate,
			EndDate:        req.Details.EndDate,
			Cost:           req.Details.Cost,
			AdditionalCost: req.Details.AdditionalCost,
			Notes:          req.Details.Notes,
		}
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), actingUserID, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListActivities GET /api/tickets/:id/activities.
func (h *TicketsHandler) ListActivities(c *fiber.Ctx) error {
	activities, err := h.service.ListActivities(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(activities))
	for _, entry := range activities {
		items = append(items, dto.ActivityResponse{
			ID:        entry.ID,
			TicketID:  entry.TicketID,
			UserID:    entry.UserID,
			Action:    entry.Action,
			Field:     entry.Field,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseListQuery(c *fiber.Ctx) listview.Options {
	return listview.Options{
		Search:   c.Query("q"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Sort:     listview.SortField(c.Query("sort")),
		Dir:      listview.SortDirection(c.Query("order")),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("page_size"), 0),
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	observers := ticket.ObserverIDs
	if observers == nil {
		observers = []string{}
	}
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Details: dto.TicketDetailsPayload{
			Content:        ticket.Details.Content,
			ExecutorID:     ticket.Details.ExecutorID,
			Customer:       ticket.Details.Customer,
			StartDate:      ticket.Details.StartDate,
			EndDate:        ticket.Details.EndDate,
			Cost:           ticket.Details.Cost,
			AdditionalCost: ticket.Details.AdditionalCost,
			Notes:          ticket.Details.Notes,
		},
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Type:        ticket.Type,
		AssigneeID:  ticket.AssigneeID,
		ReporterID:  ticket.ReporterID,
		ObserverIDs: observers,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
