package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/events"
	"github.com/spec-kit/tracker-service/internal/repository/memory"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) published() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func newCommentFixture(t *testing.T) (*service.CommentService, *service.TicketService, *recordingDispatcher) {
	t.Helper()
	tickets := memory.NewTicketStore()
	comments := memory.NewCommentStore()
	users := memory.NewUserStore()
	memory.Seed(tickets, comments, users)

	dispatcher := &recordingDispatcher{}
	ticketSvc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   tickets,
		ActivityRepo: memory.NewActivityStore(),
		UserRepo:     users,
		Dispatcher:   dispatcher,
	})
	commentSvc := service.NewCommentService(service.CommentDependencies{
		TicketRepo:  tickets,
		CommentRepo: comments,
		UserRepo:    users,
		Dispatcher:  dispatcher,
		Locks:       ticketSvc.Locks(),
	})
	return commentSvc, ticketSvc, dispatcher
}

func TestAddCommentRoundTrip(t *testing.T) {
	commentSvc, ticketSvc, dispatcher := newCommentFixture(t)
	ctx := context.Background()

	before, err := ticketSvc.GetTicket(ctx, "3")
	require.NoError(t, err)

	comment, err := commentSvc.AddComment(ctx, "3", "2", "hello", nil)
	require.NoError(t, err)
	require.Equal(t, "hello", comment.Content)
	require.Equal(t, "3", comment.TicketID)
	require.NotEmpty(t, comment.ID)

	listed, err := commentSvc.ListComments(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, "hello", listed[len(listed)-1].Content)

	after, err := ticketSvc.GetTicket(ctx, "3")
	require.NoError(t, err)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))

	published := dispatcher.published()
	require.Len(t, published, 1)
	require.Equal(t, events.EventCommentAdded, published[0].Type)
	require.Equal(t, "3", published[0].TicketID)
}

func TestAddCommentRequiresContentOrAttachments(t *testing.T) {
	commentSvc, _, _ := newCommentFixture(t)

	_, err := commentSvc.AddComment(context.Background(), "1", "2", "   ", nil)
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestAddCommentAttachmentsOnly(t *testing.T) {
	commentSvc, _, _ := newCommentFixture(t)

	attachments := []domain.Attachment{{
		ID:           "att-1",
		Filename:     "1706000000-abc.png",
		OriginalName: "screenshot.png",
		MimeType:     "image/png",
		Size:         2048,
		URL:          "/uploads/1706000000-abc.png",
	}}
	comment, err := commentSvc.AddComment(context.Background(), "1", "2", "", attachments)
	require.NoError(t, err)
	require.Empty(t, comment.Content)
	require.Len(t, comment.Attachments, 1)
}

func TestAddCommentUnknownTicketOrAuthor(t *testing.T) {
	commentSvc, _, _ := newCommentFixture(t)
	ctx := context.Background()

	_, err := commentSvc.AddComment(ctx, "999", "2", "hi", nil)
	require.True(t, util.IsNotFound(err))

	_, err = commentSvc.AddComment(ctx, "1", "nobody", "hi", nil)
	require.True(t, util.IsNotFound(err))

	_, err = commentSvc.AddComment(ctx, "1", "", "hi", nil)
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestListCommentsSeededOrdering(t *testing.T) {
	commentSvc, _, _ := newCommentFixture(t)

	comments, err := commentSvc.ListComments(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i := 1; i < len(comments); i++ {
		require.False(t, comments[i].CreatedAt.Before(comments[i-1].CreatedAt))
	}
}
