package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/listview"
	"github.com/spec-kit/tracker-service/internal/repository/memory"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/pkg/util"
)

type fixture struct {
	tickets    *memory.TicketStore
	activities *memory.ActivityStore
	comments   *memory.CommentStore
	users      *memory.UserStore
	svc        *service.TicketService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tickets:    memory.NewTicketStore(),
		activities: memory.NewActivityStore(),
		comments:   memory.NewCommentStore(),
		users:      memory.NewUserStore(),
	}
	memory.Seed(f.tickets, f.comments, f.users)
	f.svc = service.NewTicketService(service.TicketDependencies{
		TicketRepo:   f.tickets,
		ActivityRepo: f.activities,
		UserRepo:     f.users,
	})
	return f
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TicketStatus) *domain.TicketStatus       { return &s }
func priorityPtr(p domain.TicketPriority) *domain.TicketPriority { return &p }

func TestCreateTicketDefaultsAndOpeningActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ticket, err := f.svc.CreateTicket(ctx, "1", service.TicketCreateInput{Title: "  New ticket  "})
	require.NoError(t, err)
	require.Equal(t, "New ticket", ticket.Title)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	require.Equal(t, domain.TicketTypeTask, ticket.Type)
	require.NotEmpty(t, ticket.ID)

	entries, err := f.svc.ListActivities(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ActivityCreated, entries[0].Action)
	require.Equal(t, "1", entries[0].UserID)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTicket(ctx, "1", service.TicketCreateInput{Title: "   "})
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	_, err = f.svc.CreateTicket(ctx, "nobody", service.TicketCreateInput{Title: "x"})
	require.True(t, util.IsNotFound(err))

	_, err = f.svc.CreateTicket(ctx, "1", service.TicketCreateInput{Title: "x", Priority: "urgent"})
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestStatusChangeRecordsExactlyOneActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// priority high -> high is a no-op; only the status change is audited
	updated, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Status:   statusPtr(domain.TicketStatusResolved),
		Priority: priorityPtr(domain.TicketPriorityHigh),
	})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusResolved, updated.Status)

	entries, err := f.svc.ListActivities(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ActivityStatusChanged, entries[0].Action)
	require.Equal(t, "status", entries[0].Field)
	require.Equal(t, "in-progress", entries[0].OldValue)
	require.Equal(t, "resolved", entries[0].NewValue)
	require.Equal(t, "2", entries[0].UserID)
}

func TestNoOpPatchLeavesTicketUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.svc.GetTicket(ctx, "1")
	require.NoError(t, err)

	updated, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Title:       strPtr(before.Title),
		Status:      statusPtr(before.Status),
		Priority:    priorityPtr(before.Priority),
		AssigneeID:  strPtr("1"),
		ObserverIDs: []string{"3"},
	})
	require.NoError(t, err)
	require.True(t, updated.UpdatedAt.Equal(before.UpdatedAt))

	entries, err := f.svc.ListActivities(ctx, "1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestObserverSymmetricDifference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// ticket 2 observers: [1, 2] -> [2, 3]: remove John Doe, add Bob Johnson
	updated, err := f.svc.UpdateTicket(ctx, "2", "4", service.TicketPatch{
		ObserverIDs: []string{"2", "3"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"2", "3"}, updated.ObserverIDs)

	entries, err := f.svc.ListActivities(ctx, "2")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAction := map[domain.ActivityAction]domain.Activity{}
	for _, entry := range entries {
		require.Equal(t, "observers", entry.Field)
		byAction[entry.Action] = entry
	}
	require.Equal(t, "John Doe", byAction[domain.ActivityObserverRemoved].OldValue)
	require.Equal(t, "Bob Johnson", byAction[domain.ActivityObserverAdded].NewValue)
}

func TestObserverAddsToEmptySet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateTicket(ctx, "5", "1", service.TicketPatch{
		ObserverIDs: []string{"2", "3"},
	})
	require.NoError(t, err)

	entries, err := f.svc.ListActivities(ctx, "5")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].NewValue, entries[1].NewValue}
	require.ElementsMatch(t, []string{"Jane Smith", "Bob Johnson"}, names)
	for _, entry := range entries {
		require.Equal(t, domain.ActivityObserverAdded, entry.Action)
	}
}

func TestObserverPatchIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	patch := service.TicketPatch{ObserverIDs: []string{"2", "3"}}
	_, err := f.svc.UpdateTicket(ctx, "5", "1", patch)
	require.NoError(t, err)
	_, err = f.svc.UpdateTicket(ctx, "5", "1", patch)
	require.NoError(t, err)

	entries, err := f.svc.ListActivities(ctx, "5")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestAssigneeChangeUsesDisplayNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// ticket 4 is unassigned
	updated, err := f.svc.UpdateTicket(ctx, "4", "4", service.TicketPatch{
		AssigneeID: strPtr("1"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	require.Equal(t, "1", *updated.AssigneeID)

	entries, err := f.svc.ListActivities(ctx, "4")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ActivityAssigneeChanged, entries[0].Action)
	require.Equal(t, "", entries[0].OldValue)
	require.Equal(t, "John Doe", entries[0].NewValue)

	// clearing the assignee is audited the same way
	_, err = f.svc.UpdateTicket(ctx, "4", "4", service.TicketPatch{AssigneeID: strPtr("")})
	require.NoError(t, err)
	entries, err = f.svc.ListActivities(ctx, "4")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "John Doe", entries[0].OldValue)
	require.Equal(t, "", entries[0].NewValue)
}

func TestDetailsChangesAreAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cost := int64(1500)
	notes := "Waiting on vendor confirmation."
	updated, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Details: &service.DetailsPatch{Cost: &cost, Notes: &notes},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1500), updated.Details.Cost)
	require.Equal(t, notes, updated.Details.Notes)

	entries, err := f.svc.ListActivities(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byField := map[string]domain.Activity{}
	for _, entry := range entries {
		require.Equal(t, domain.ActivityUpdated, entry.Action)
		byField[entry.Field] = entry
	}
	require.Equal(t, "1200", byField["details.cost"].OldValue)
	require.Equal(t, "1500", byField["details.cost"].NewValue)
	require.Equal(t, notes, byField["details.notes"].NewValue)
}

func TestUpdateUnknownTicket(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateTicket(context.Background(), "999", "1", service.TicketPatch{
		Status: statusPtr(domain.TicketStatusClosed),
	})
	require.True(t, util.IsNotFound(err))
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := domain.TicketStatus("paused")
	_, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{Status: &bad})
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	_, err = f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{Title: strPtr("  ")})
	require.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestActivitiesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Status: statusPtr(domain.TicketStatusResolved),
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Status: statusPtr(domain.TicketStatusClosed),
	})
	require.NoError(t, err)

	entries, err := f.svc.ListActivities(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "closed", entries[0].NewValue)
	require.Equal(t, "resolved", entries[1].NewValue)
	require.False(t, entries[0].CreatedAt.Before(entries[1].CreatedAt))
}

func TestUpdateAdvancesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.svc.GetTicket(ctx, "1")
	require.NoError(t, err)

	updated, err := f.svc.UpdateTicket(ctx, "1", "2", service.TicketPatch{
		Title: strPtr("Login flow broken on staging"),
	})
	require.NoError(t, err)
	require.True(t, updated.UpdatedAt.After(before.UpdatedAt))
}

func TestListTicketsSearchAndMeta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// "jane" matches ticket 1 (reporter Jane Smith) and ticket 3 (assignee)
	page, err := f.svc.ListTickets(ctx, listview.Options{Search: "jane"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	require.ElementsMatch(t, []string{"1", "3"}, ids)

	all, err := f.svc.ListTickets(ctx, listview.Options{})
	require.NoError(t, err)
	require.Equal(t, 5, all.Total)
	require.Equal(t, 20, all.PageSize)
	require.Equal(t, 1, all.TotalPages)
}
