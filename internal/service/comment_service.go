package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/repository"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// CommentService appends comments to tickets, keeping the ticket's
// UpdatedAt in step with the comment collection.
type CommentService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	locks      *TicketLocks
}

// CommentDependencies bundles collaborators for the comment service.
type CommentDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Locks       *TicketLocks
}

// NewCommentService constructs the service. Pass the ticket service's lock
// table so comment writes serialize with ticket updates.
func NewCommentService(deps CommentDependencies) *CommentService {
	locks := deps.Locks
	if locks == nil {
		locks = NewTicketLocks()
	}
	return &CommentService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		locks:      locks,
	}
}

// AddComment validates and appends a comment, then refreshes the owning
// ticket's UpdatedAt. A comment needs text or at least one attachment.
func (s *CommentService) AddComment(ctx context.Context, ticketID, authorID, content string, attachments []domain.Attachment) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if authorID == "" {
		return nil, util.NewValidationError("authorId required", nil)
	}
	if content == "" && len(attachments) == 0 {
		return nil, util.NewValidationError("comment needs content or attachments", nil)
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:          uuid.NewString(),
		TicketID:    ticket.ID,
		AuthorID:    authorID,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   now,
	}
	if err := s.comments.Append(ctx, comment); err != nil {
		return nil, err
	}

	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		UserID:   authorID,
		Payload: events.CommentAddedPayload{
			CommentID:       comment.ID,
			AuthorID:        authorID,
			AttachmentCount: len(attachments),
			ContentPreview:  contentPreview(content, 120),
		},
	})
	return comment, nil
}

// ListComments returns a ticket's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.comments.ListByTicket(ctx, ticketID)
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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

func contentPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
