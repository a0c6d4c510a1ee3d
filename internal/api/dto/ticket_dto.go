package dto

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// Ticket payloads use camelCase field names, matching what the web client
// sends and expects back.

// TicketDetailsPayload mirrors the nested details block.
type TicketDetailsPayload struct {
	Content        string  `json:"content,omitempty"`
	ExecutorID     *string `json:"executorId,omitempty"`
	Customer       string  `json:"customer,omitempty"`
	StartDate      string  `json:"startDate,omitempty"`
	EndDate        string  `json:"endDate,omitempty"`
	Cost           int64   `json:"cost,omitempty"`
	AdditionalCost int64   `json:"additionalCost,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        domain.TicketType     `json:"type"`
	Priority    domain.TicketPriority `json:"priority"`
	AssigneeID  *string               `json:"assigneeId"`
	ObserverIDs []string              `json:"observerIds"`
	Details     *TicketDetailsPayload `json:"details"`
	UserID      string                `json:"userId"`
}

// UpdateTicketRequest is a partial update; absent fields are untouched.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *domain.TicketStatus   `json:"status"`
	Priority    *domain.TicketPriority `json:"priority"`
	AssigneeID  *string                `json:"assigneeId"`
	ObserverIDs []string               `json:"observerIds"`
	Details     *TicketDetailsPatch    `json:"details"`
	UserID      string                 `json:"userId"`
}

// TicketDetailsPatch is a partial update of the details block.
type TicketDetailsPatch struct {
	Content        *string `json:"content"`
	ExecutorID     *string `json:"executorId"`
	Customer       *string `json:"customer"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	Cost           *int64  `json:"cost"`
	AdditionalCost *int64  `json:"additionalCost"`
	Notes          *string `json:"notes"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Details     TicketDetailsPayload  `json:"details"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Type        domain.TicketType     `json:"type"`
	AssigneeID  *string               `json:"assigneeId"`
	ReporterID  string                `json:"reporterId"`
	ObserverIDs []string              `json:"observerIds"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ActivityResponse is one audit trail entry.
type ActivityResponse struct {
	ID        string                `json:"id"`
	TicketID  string                `json:"ticketId"`
	UserID    string                `json:"userId"`
	Action    domain.ActivityAction `json:"action"`
	Field     string                `json:"field,omitempty"`
	OldValue  string                `json:"oldValue,omitempty"`
	NewValue  string                `json:"newValue,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ListMeta describes the pagination envelope on list responses.
type ListMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
