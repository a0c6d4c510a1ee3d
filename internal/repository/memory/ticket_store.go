package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// TicketStore is a mutex-guarded in-memory TicketRepository. It backs the
// service when no database is configured and every repository-level test.
type TicketStore struct {
	mu      sync.RWMutex
	tickets map[string]*domain.Ticket
}

// NewTicketStore creates an empty store.
func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]*domain.Ticket)}
}

var _ repository.TicketRepository = (*TicketStore)(nil)

func (s *TicketStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[ticket.ID]; exists {
		return util.NewConflict("ticket already exists", map[string]any{"id": ticket.ID})
	}
	s.tickets[ticket.ID] = cloneTicket(ticket)
	return nil
}

func (s *TicketStore) Update(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[ticket.ID]; !exists {
		return util.NewNotFound("ticket", map[string]any{"id": ticket.ID})
	}
	s.tickets[ticket.ID] = cloneTicket(ticket)
	return nil
}

func (s *TicketStore) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, exists := s.tickets[id]
	if !exists {
		return nil, util.NewNotFound("ticket", map[string]any{"id": id})
	}
	return cloneTicket(ticket), nil
}

func (s *TicketStore) List(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		result = append(result, *cloneTicket(ticket))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	clone := *t
	clone.ObserverIDs = append([]string(nil), t.ObserverIDs...)
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		clone.AssigneeID = &id
	}
	if t.Details.ExecutorID != nil {
		id := *t.Details.ExecutorID
		clone.Details.ExecutorID = &id
	}
	return &clone
}
