package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// ActivityRepository stores audit entries. Entries are append-only; there
// is deliberately no update or delete.
type ActivityRepository interface {
	Append(ctx context.Context, activity *domain.Activity) error
	// ListByTicket returns entries most recent first.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds the Postgres-backed repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO activities (id, ticket_id, user_id, action, field, old_value, new_value, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.TicketID,
		activity.UserID,
		activity.Action,
		activity.Field,
		activity.OldValue,
		activity.NewValue,
		activity.CreatedAt,
	)
	return err
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Activity, error) {
	const query = `
        SELECT id, ticket_id, user_id, action, field, old_value, new_value, created_at
        FROM activities WHERE ticket_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.TicketID,
			&activity.UserID,
			&activity.Action,
			&activity.Field,
			&activity.OldValue,
			&activity.NewValue,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
