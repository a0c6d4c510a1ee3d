package memory

import (
	"context"
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// Seed populates the in-memory stores with the demo data set served when no
// database is configured.
func Seed(tickets *TicketStore, comments *CommentStore, users *UserStore) {
	for _, user := range seedUsers() {
		users.Put(user)
	}

	ctx := context.Background()
	for _, ticket := range seedTickets() {
		t := ticket
		_ = tickets.Create(ctx, &t)
	}
	for _, comment := range seedComments() {
		c := comment
		_ = comments.Append(ctx, &c)
	}
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", CreatedAt: ts("2024-01-01T08:00:00Z")},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", CreatedAt: ts("2024-01-01T08:00:00Z")},
		{ID: "3", Name: "Bob Johnson", Email: "bob@example.com", CreatedAt: ts("2024-01-02T08:00:00Z")},
		{ID: "4", Name: "Alice Brown", Email: "alice@example.com", CreatedAt: ts("2024-01-02T08:00:00Z")},
	}
}

func seedTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			ID:          "1",
			Title:       "Login page not working correctly",
			Description: "Users are unable to log in using their credentials. The form accepts the input but returns an error even with correct credentials.",
			Details: domain.TicketDetails{
				Content:   "Reproduced on staging; suspect the token validation logic.",
				Customer:  "Acme Corp",
				StartDate: "2024-01-15",
				EndDate:   "2024-01-20",
				Cost:      1200,
			},
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityHigh,
			Type:        domain.TicketTypeBug,
			AssigneeID:  ptr("1"),
			ReporterID:  "2",
			ObserverIDs: []string{"3"},
			CreatedAt:   ts("2024-01-15T09:00:00Z"),
			UpdatedAt:   ts("2024-01-15T14:25:00Z"),
		},
		{
			ID:          "2",
			Title:       "Add dark mode support",
			Description: "Implement dark mode across the application with a persisted theme toggle.",
			Details: domain.TicketDetails{
				Content:   "Design tokens exist; needs a theme switcher and storage of the preference.",
				Customer:  "Internal",
				StartDate: "2024-01-22",
				EndDate:   "2024-02-05",
				Cost:      800,
			},
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityMedium,
			Type:        domain.TicketTypeFeature,
			AssigneeID:  ptr("4"),
			ReporterID:  "3",
			ObserverIDs: []string{"1", "2"},
			CreatedAt:   ts("2024-01-16T08:30:00Z"),
			UpdatedAt:   ts("2024-01-16T09:30:00Z"),
		},
		{
			ID:          "3",
			Title:       "Migrate customer data to new schema",
			Description: "Move legacy customer records onto the new normalized schema and verify integrity.",
			Details: domain.TicketDetails{
				Content:        "Dry run completed on staging; production window pending.",
				ExecutorID:     ptr("2"),
				Customer:       "Globex",
				StartDate:      "2024-01-10",
				EndDate:        "2024-01-14",
				Cost:           2500,
				AdditionalCost: 300,
				Notes:          "Requires a maintenance window.",
			},
			Status:      domain.TicketStatusResolved,
			Priority:    domain.TicketPriorityHigh,
			Type:        domain.TicketTypeTask,
			AssigneeID:  ptr("2"),
			ReporterID:  "1",
			ObserverIDs: []string{"4"},
			CreatedAt:   ts("2024-01-10T10:00:00Z"),
			UpdatedAt:   ts("2024-01-14T17:30:00Z"),
		},
		{
			ID:          "4",
			Title:       "Improve list rendering performance",
			Description: "Large ticket lists render slowly; paginate and memoize the heavy rows.",
			Details: domain.TicketDetails{
				Content:  "Profile first, then split the table into virtualized pages.",
				Customer: "Internal",
			},
			Status:     domain.TicketStatusOpen,
			Priority:   domain.TicketPriorityLow,
			Type:       domain.TicketTypeImprovement,
			ReporterID: "4",
			CreatedAt:  ts("2024-01-18T11:00:00Z"),
			UpdatedAt:  ts("2024-01-18T11:00:00Z"),
		},
		{
			ID:          "5",
			Title:       "Payment webhook drops events under load",
			Description: "Bursts of webhook deliveries are lost; the receiver times out instead of queueing.",
			Details: domain.TicketDetails{
				Content:  "Needs a buffered intake and retry on the processor side.",
				Customer: "Initech",
			},
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityCritical,
			Type:        domain.TicketTypeBug,
			ReporterID:  "1",
			ObserverIDs: []string{},
			CreatedAt:   ts("2024-01-19T07:45:00Z"),
			UpdatedAt:   ts("2024-01-19T07:45:00Z"),
		},
	}
}

func seedComments() []domain.Comment {
	return []domain.Comment{
		{
			ID:        "1",
			TicketID:  "1",
			AuthorID:  "2",
			Content:   "I can reproduce this issue on my local environment. It seems to be related to the authentication module.",
			CreatedAt: ts("2024-01-15T10:30:00Z"),
		},
		{
			ID:        "2",
			TicketID:  "1",
			AuthorID:  "1",
			Content:   "Thanks for the report. I'll investigate this issue and provide an update soon.",
			CreatedAt: ts("2024-01-15T11:15:00Z"),
		},
		{
			ID:        "3",
			TicketID:  "1",
			AuthorID:  "1",
			Content:   "I've identified the root cause. The problem is in the token validation logic. Working on a fix.",
			CreatedAt: ts("2024-01-15T14:20:00Z"),
			UpdatedAt: tsPtr("2024-01-15T14:25:00Z"),
		},
		{
			ID:        "4",
			TicketID:  "2",
			AuthorID:  "3",
			Content:   "This would be a great addition to improve user experience. I suggest we implement this in the next sprint.",
			CreatedAt: ts("2024-01-16T09:00:00Z"),
		},
		{
			ID:        "5",
			TicketID:  "2",
			AuthorID:  "4",
			Content:   "Agreed! I can start working on the wireframes and user flow this week.",
			CreatedAt: ts("2024-01-16T09:30:00Z"),
		},
		{
			ID:        "6",
			TicketID:  "3",
			AuthorID:  "2",
			Content:   "The data has been successfully migrated. All tests are passing.",
			CreatedAt: ts("2024-01-14T16:45:00Z"),
		},
		{
			ID:        "7",
			TicketID:  "3",
			AuthorID:  "1",
			Content:   "Great work! I've verified the migration on the staging environment. Everything looks good.",
			CreatedAt: ts("2024-01-14T17:30:00Z"),
		},
	}
}

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func tsPtr(value string) *time.Time {
	t := ts(value)
	return &t
}

func ptr(s string) *string {
	return &s
}
