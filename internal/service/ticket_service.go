package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/listview"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// TicketService coordinates ticket reads and mutations. Every mutation that
// changes a field leaves exactly one activity entry behind.
type TicketService struct {
	tickets    repository.TicketRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	locks      *TicketLocks
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ActivityRepo repository.ActivityRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
	Locks        *TicketLocks
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Type        domain.TicketType
	Priority    domain.TicketPriority
	AssigneeID  *string
	ObserverIDs []string
	Details     domain.TicketDetails
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	locks := deps.Locks
	if locks == nil {
		locks = NewTicketLocks()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		activities: deps.ActivityRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		locks:      locks,
	}
}

// Locks exposes the per-ticket lock table so sibling services mutating
// tickets share the same serialization.
func (s *TicketService) Locks() *TicketLocks {
	return s.locks
}

// CreateTicket stores a new ticket reported by the given user and records
// the opening activity entry.
func (s *TicketService) CreateTicket(ctx context.Context, reporterID string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, util.NewValidationError("title required", nil)
	}
	if _, err := s.users.GetByID(ctx, reporterID); err != nil {
		return nil, err
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return nil, util.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if input.Type != "" && !domain.ValidType(input.Type) {
		return nil, util.NewValidationError("unknown type", map[string]any{"type": input.Type})
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Details:     input.Details,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Type:        input.Type,
		AssigneeID:  input.AssigneeID,
		ReporterID:  reporterID,
		ObserverIDs: dedupe(input.ObserverIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Type == "" {
		ticket.Type = domain.TicketTypeTask
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.activities.Append(ctx, &domain.Activity{
		ID:        uuid.NewString(),
		TicketID:  ticket.ID,
		UserID:    reporterID,
		Action:    domain.ActivityCreated,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		UserID:   reporterID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Type:     ticket.Type,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket returns the ticket or a not-found error.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, ticketID)
}

// ListTickets derives a filtered, sorted, paginated view over the full
// collection without mutating it.
func (s *TicketService) ListTickets(ctx context.Context, opts listview.Options) (listview.Page, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return listview.Page{}, err
	}
	names, err := s.userNames(ctx)
	if err != nil {
		return listview.Page{}, err
	}
	return listview.Apply(tickets, names, opts), nil
}

// UpdateTicket applies a partial update and appends one activity entry per
// changed field, attributed to actingUserID. Fields equal to their current
// value are no-ops; UpdatedAt advances only when something changed.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID, actingUserID string, patch TicketPatch) (*domain.Ticket, error) {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, util.NewValidationError("unknown status", map[string]any{"status": *patch.Status})
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return nil, util.NewValidationError("unknown priority", map[string]any{"priority": *patch.Priority})
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, util.NewValidationError("title cannot be empty", nil)
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	changes := diffTicket(ticket, patch, s.displayNameResolver(ctx))
	if len(changes) == 0 {
		return ticket, nil
	}

	now := time.Now()
	applyPatch(ticket, patch)
	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	summaries := make([]events.FieldChangeSummary, 0, len(changes))
	for _, change := range changes {
		if err := s.activities.Append(ctx, &domain.Activity{
			ID:        uuid.NewString(),
			TicketID:  ticket.ID,
			UserID:    actingUserID,
			Action:    change.Action,
			Field:     change.Field,
			OldValue:  change.OldValue,
			NewValue:  change.NewValue,
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
		summaries = append(summaries, events.FieldChangeSummary{
			Action:   change.Action,
			Field:    change.Field,
			OldValue: change.OldValue,
			NewValue: change.NewValue,
		})
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		UserID:   actingUserID,
		Payload:  events.TicketUpdatedPayload{Changes: summaries},
	})
	return ticket, nil
}

// ListActivities returns the audit trail for a ticket, most recent first.
func (s *TicketService) ListActivities(ctx context.Context, ticketID string) ([]domain.Activity, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.activities.ListByTicket(ctx, ticketID)
}

// displayNameResolver resolves user IDs to display names for history
// entries, falling back to the raw ID when the user is unknown.
func (s *TicketService) displayNameResolver(ctx context.Context) func(string) string {
	return func(id string) string {
		user, err := s.users.GetByID(ctx, id)
		if err != nil || user.Name == "" {
			return id
		}
		return user.Name
	}
}

func (s *TicketService) userNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
