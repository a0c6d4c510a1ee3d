package repository

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// PreferenceRepository stores per-user display settings.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
	Save(ctx context.Context, userID string, prefs domain.Preferences) error
}

type preferenceRepository struct {
	client *redis.Client
}

// NewPreferenceRepository builds a Redis-backed repository. Preferences are
// kept in one hash per user.
func NewPreferenceRepository(client *redis.Client) PreferenceRepository {
	return &preferenceRepository{client: client}
}

func prefsKey(userID string) string {
	return "user:prefs:" + userID
}

func (r *preferenceRepository) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()
	fields, err := r.client.HGetAll(ctx, prefsKey(userID)).Result()
	if err != nil {
		// an unreachable store must not break page loads; serve defaults
		return prefs, nil
	}
	if len(fields) == 0 {
		return prefs, nil
	}
	if theme, ok := fields["theme"]; ok && theme != "" {
		prefs.Theme = theme
	}
	if page, ok := fields["default_page"]; ok && page != "" {
		prefs.DefaultPage = page
	}
	if size, ok := fields["page_size"]; ok {
		if parsed, err := strconv.Atoi(size); err == nil && parsed > 0 {
			prefs.PageSize = parsed
		}
	}
	return prefs, nil
}

func (r *preferenceRepository) Save(ctx context.Context, userID string, prefs domain.Preferences) error {
	return r.client.HSet(ctx, prefsKey(userID), map[string]any{
		"theme":        prefs.Theme,
		"default_page": prefs.DefaultPage,
		"page_size":    strconv.Itoa(prefs.PageSize),
	}).Err()
}
