package service

import (
	"context"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/listview"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// PreferenceService reads and writes per-user display settings.
type PreferenceService struct {
	prefs repository.PreferenceRepository
	users repository.UserRepository
}

// NewPreferenceService constructs the service.
func NewPreferenceService(prefs repository.PreferenceRepository, users repository.UserRepository) *PreferenceService {
	return &PreferenceService{prefs: prefs, users: users}
}

// Get returns the user's saved preferences, or defaults.
func (s *PreferenceService) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return domain.Preferences{}, err
	}
	return s.prefs.Get(ctx, userID)
}

// Save validates and stores preferences for the user.
func (s *PreferenceService) Save(ctx context.Context, userID string, prefs domain.Preferences) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if prefs.Theme != "light" && prefs.Theme != "dark" {
		return util.NewValidationError("theme must be light or dark", map[string]any{"theme": prefs.Theme})
	}
	if !allowedPageSize(prefs.PageSize) {
		return util.NewValidationError("unsupported page size", map[string]any{"page_size": prefs.PageSize})
	}
	if prefs.DefaultPage == "" {
		prefs.DefaultPage = domain.DefaultPreferences().DefaultPage
	}
	return s.prefs.Save(ctx, userID, prefs)
}

func allowedPageSize(size int) bool {
	for _, allowed := range listview.PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
