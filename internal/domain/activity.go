package domain

import "time"

// ActivityAction captures what kind of change an audit entry describes.
type ActivityAction string

const (
	ActivityCreated         ActivityAction = "created"
	ActivityUpdated         ActivityAction = "updated"
	ActivityStatusChanged   ActivityAction = "status_changed"
	ActivityPriorityChanged ActivityAction = "priority_changed"
	ActivityAssigneeChanged ActivityAction = "assignee_changed"
	ActivityObserverAdded   ActivityAction = "observer_added"
	ActivityObserverRemoved ActivityAction = "observer_removed"
)

// Activity is an immutable audit trail entry describing a single
// field-level change to a ticket. Old and new values are display
// strings captured at the moment of comparison.
type Activity struct {
	ID        string
	TicketID  string
	UserID    string
	Action    ActivityAction
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}
