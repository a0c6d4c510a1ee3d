package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketType classifies the kind of work a ticket tracks.
type TicketType string

const (
	TicketTypeBug         TicketType = "bug"
	TicketTypeFeature     TicketType = "feature"
	TicketTypeTask        TicketType = "task"
	TicketTypeImprovement TicketType = "improvement"
)

// TicketDetails holds the free-form planning fields nested under a ticket.
type TicketDetails struct {
	Content        string
	ExecutorID     *string
	Customer       string
	StartDate      string
	EndDate        string
	Cost           int64
	AdditionalCost int64
	Notes          string
}

// Ticket is the aggregate for trackable units of work.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Details     TicketDetails
	Status      TicketStatus
	Priority    TicketPriority
	Type        TicketType
	AssigneeID  *string
	ReporterID  string
	ObserverIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasObserver reports whether userID is in the observer set.
func (t *Ticket) HasObserver(userID string) bool {
	for _, id := range t.ObserverIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known ticket priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// ValidType reports whether t is a known ticket type.
func ValidType(t TicketType) bool {
	switch t {
	case TicketTypeBug, TicketTypeFeature, TicketTypeTask, TicketTypeImprovement:
		return true
	}
	return false
}
