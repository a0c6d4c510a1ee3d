package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. The service layer owns
// identifiers and timestamps; implementations only store them.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, priority, type, assignee_id, reporter_id, observer_ids,
               details_content, details_executor_id, details_customer, details_start_date, details_end_date,
               details_cost, details_additional_cost, details_notes, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (` + ticketColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Type,
		ticket.AssigneeID,
		ticket.ReporterID,
		ticket.ObserverIDs,
		ticket.Details.Content,
		ticket.Details.ExecutorID,
		ticket.Details.Customer,
		ticket.Details.StartDate,
		ticket.Details.EndDate,
		ticket.Details.Cost,
		ticket.Details.AdditionalCost,
		ticket.Details.Notes,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	return err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, status=$3, priority=$4, type=$5, assignee_id=$6,
            observer_ids=$7, details_content=$8, details_executor_id=$9, details_customer=$10,
            details_start_date=$11, details_end_date=$12, details_cost=$13, details_additional_cost=$14,
            details_notes=$15, updated_at=$16
        WHERE id=$17`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Type,
		ticket.AssigneeID,
		ticket.ObserverIDs,
		ticket.Details.Content,
		ticket.Details.ExecutorID,
		ticket.Details.Customer,
		ticket.Details.StartDate,
		ticket.Details.EndDate,
		ticket.Details.Cost,
		ticket.Details.AdditionalCost,
		ticket.Details.Notes,
		ticket.UpdatedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketScanTargets(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketScanTargets(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func ticketScanTargets(ticket *domain.Ticket) []any {
	return []any{
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Type,
		&ticket.AssigneeID,
		&ticket.ReporterID,
		&ticket.ObserverIDs,
		&ticket.Details.Content,
		&ticket.Details.ExecutorID,
		&ticket.Details.Customer,
		&ticket.Details.StartDate,
		&ticket.Details.EndDate,
		&ticket.Details.Cost,
		&ticket.Details.AdditionalCost,
		&ticket.Details.Notes,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
}
