package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/repository"
)

// CommentStore is an append-only in-memory CommentRepository.
type CommentStore struct {
	mu       sync.RWMutex
	comments []domain.Comment
}

// NewCommentStore creates an empty store.
func NewCommentStore() *CommentStore {
	return &CommentStore{}
}

var _ repository.CommentRepository = (*CommentStore)(nil)

func (s *CommentStore) Append(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *comment
	clone.Attachments = append([]domain.Attachment(nil), comment.Attachments...)
	s.comments = append(s.comments, clone)
	return nil
}

func (s *CommentStore) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Comment
	for _, comment := range s.comments {
		if comment.TicketID == ticketID {
			clone := comment
			clone.Attachments = append([]domain.Attachment(nil), comment.Attachments...)
			result = append(result, clone)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
