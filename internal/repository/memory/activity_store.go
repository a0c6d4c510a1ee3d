package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/repository"
)

// ActivityStore is an append-only in-memory ActivityRepository.
type ActivityStore struct {
	mu      sync.RWMutex
	entries []domain.Activity
}

// NewActivityStore creates an empty store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

var _ repository.ActivityRepository = (*ActivityStore)(nil)

func (s *ActivityStore) Append(ctx context.Context, activity *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *activity)
	return nil
}

func (s *ActivityStore) ListByTicket(ctx context.Context, ticketID string) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Activity
	for _, entry := range s.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	// most recent first; stable so same-timestamp entries keep append order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
