package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// CommentRepository stores ticket comments and their attachments.
type CommentRepository interface {
	Append(ctx context.Context, comment *domain.Comment) error
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds the Postgres-backed repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Append(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (id, ticket_id, author_id, content, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.TicketID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	); err != nil {
		return err
	}
	for _, att := range comment.Attachments {
		const attQuery = `
            INSERT INTO comment_attachments (id, comment_id, filename, original_name, mime_type, size_bytes, url, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
		if _, err := r.pool.Exec(ctx, attQuery,
			att.ID,
			comment.ID,
			att.Filename,
			att.OriginalName,
			att.MimeType,
			att.Size,
			att.URL,
			att.CreatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author_id, content, created_at, updated_at
        FROM comments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		attachments, err := r.listAttachments(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Attachments = attachments
	}
	return result, nil
}

func (r *commentRepository) listAttachments(ctx context.Context, commentID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, filename, original_name, mime_type, size_bytes, url, created_at
        FROM comment_attachments WHERE comment_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.Filename,
			&att.OriginalName,
			&att.MimeType,
			&att.Size,
			&att.URL,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
