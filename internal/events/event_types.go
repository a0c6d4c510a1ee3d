package events

import (
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventCommentAdded  EventType = "comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Type     domain.TicketType     `json:"ticket_type"`
	Priority domain.TicketPriority `json:"priority"`
}

// FieldChangeSummary mirrors one recorded activity entry.
type FieldChangeSummary struct {
	Action   domain.ActivityAction `json:"action"`
	Field    string                `json:"field,omitempty"`
	OldValue string                `json:"old_value,omitempty"`
	NewValue string                `json:"new_value,omitempty"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Changes []FieldChangeSummary `json:"changes"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID       string `json:"comment_id"`
	AuthorID        string `json:"author_id"`
	AttachmentCount int    `json:"attachment_count"`
	ContentPreview  string `json:"content_preview"`
}
