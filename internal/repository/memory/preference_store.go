package memory

import (
	"context"
	"sync"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/repository"
)

// PreferenceStore is an in-memory PreferenceRepository, used when Redis is
// not configured.
type PreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preferences
}

// NewPreferenceStore creates an empty store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: make(map[string]domain.Preferences)}
}

var _ repository.PreferenceRepository = (*PreferenceStore)(nil)

func (s *PreferenceStore) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if prefs, exists := s.prefs[userID]; exists {
		return prefs, nil
	}
	return domain.DefaultPreferences(), nil
}

func (s *PreferenceStore) Save(ctx context.Context, userID string, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = prefs
	return nil
}
