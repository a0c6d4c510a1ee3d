package listview

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/domain"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func ptr(s string) *string { return &s }

func fixtureTickets() ([]domain.Ticket, map[string]string) {
	names := map[string]string{
		"u1": "John Doe",
		"u2": "Jane Smith",
		"u3": "Bob Johnson",
	}
	tickets := []domain.Ticket{
		{
			ID: "1", Title: "Fix login", Description: "auth broken",
			Details:  domain.TicketDetails{Customer: "Acme Corp"},
			Status:   domain.TicketStatusInProgress,
			Priority: domain.TicketPriorityHigh,
			Type:     domain.TicketTypeBug,
			AssigneeID: ptr("u1"), ReporterID: "u2",
			CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-01-16"),
		},
		{
			ID: "2", Title: "Dark mode", Description: "theme toggle",
			Details:  domain.TicketDetails{Customer: "Internal"},
			Status:   domain.TicketStatusOpen,
			Priority: domain.TicketPriorityMedium,
			Type:     domain.TicketTypeFeature,
			AssigneeID: ptr("u3"), ReporterID: "u1",
			CreatedAt: day("2024-01-16"), UpdatedAt: day("2024-01-16"),
		},
		{
			ID: "3", Title: "Schema migration", Description: "move customer data",
			Details:  domain.TicketDetails{Customer: "Globex"},
			Status:   domain.TicketStatusResolved,
			Priority: domain.TicketPriorityCritical,
			Type:     domain.TicketTypeTask,
			ReporterID: "u3",
			CreatedAt:  day("2024-01-10"), UpdatedAt: day("2024-01-14"),
		},
		{
			ID: "4", Title: "Slow lists", Description: "paginate tables",
			Details:  domain.TicketDetails{Customer: "Internal"},
			Status:   domain.TicketStatusClosed,
			Priority: domain.TicketPriorityLow,
			Type:     domain.TicketTypeImprovement,
			ReporterID: "u2",
			CreatedAt:  day("2024-01-18"), UpdatedAt: day("2024-01-19"),
		},
	}
	return tickets, names
}

func idsOf(page Page) []string {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	tickets, names := fixtureTickets()

	cases := []struct {
		query string
		want  []string
	}{
		{"login", []string{"1"}},            // title
		{"theme", []string{"2"}},            // description
		{"globex", []string{"3"}},           // customer
		{"jane", []string{"1", "4"}},        // reporter name
		{"bob", []string{"3", "2"}},         // assignee and reporter name
		{"", []string{"3", "1", "2", "4"}},  // no filter, created asc default
		{"nothing-here", nil},
	}
	for _, tc := range cases {
		page := Apply(tickets, names, Options{Search: tc.query})
		require.Equal(t, tc.want, append([]string(nil), idsOf(page)...), "query %q", tc.query)
	}
}

func TestDateRangeInclusive(t *testing.T) {
	tickets, names := fixtureTickets()

	page := Apply(tickets, names, Options{DateFrom: "2024-01-15", DateTo: "2024-01-16"})
	require.Equal(t, []string{"1", "2"}, idsOf(page))

	page = Apply(tickets, names, Options{DateFrom: "2024-01-16"})
	require.Equal(t, []string{"2", "4"}, idsOf(page))

	page = Apply(tickets, names, Options{DateTo: "2024-01-10"})
	require.Equal(t, []string{"3"}, idsOf(page))
}

func TestSortByEnumRank(t *testing.T) {
	tickets, names := fixtureTickets()

	page := Apply(tickets, names, Options{Sort: SortPriority, Dir: Asc})
	require.Equal(t, []string{"4", "2", "1", "3"}, idsOf(page))

	page = Apply(tickets, names, Options{Sort: SortPriority, Dir: Desc})
	require.Equal(t, []string{"3", "1", "2", "4"}, idsOf(page))

	page = Apply(tickets, names, Options{Sort: SortStatus, Dir: Asc})
	require.Equal(t, []string{"2", "1", "3", "4"}, idsOf(page))
}

func TestSortByAssigneeName(t *testing.T) {
	tickets, names := fixtureTickets()

	// unassigned tickets sort first on empty name
	page := Apply(tickets, names, Options{Sort: SortAssignee, Dir: Asc})
	ids := idsOf(page)
	require.Len(t, ids, 4)
	require.Equal(t, "2", ids[2]) // Bob Johnson < John Doe
	require.Equal(t, "1", ids[3])
}

func TestPagination(t *testing.T) {
	var tickets []domain.Ticket
	for i := 1; i <= 25; i++ {
		tickets = append(tickets, domain.Ticket{
			ID:        fmt.Sprintf("%d", i),
			Title:     fmt.Sprintf("ticket %d", i),
			CreatedAt: day("2024-01-01").Add(time.Duration(i) * time.Hour),
		})
	}

	page := Apply(tickets, nil, Options{Page: 1, PageSize: 10})
	require.Equal(t, 10, len(page.Items))
	require.Equal(t, 25, page.Total)
	require.Equal(t, 3, page.TotalPages)

	last := Apply(tickets, nil, Options{Page: 3, PageSize: 10})
	require.Equal(t, 5, len(last.Items))

	// out-of-range pages clamp to the last page
	clamped := Apply(tickets, nil, Options{Page: 99, PageSize: 10})
	require.Equal(t, 3, clamped.Page)
	require.Equal(t, 5, len(clamped.Items))

	// unsupported page sizes fall back to the default
	fallback := Apply(tickets, nil, Options{PageSize: 7})
	require.Equal(t, 20, fallback.PageSize)
	require.Equal(t, 20, len(fallback.Items))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tickets, names := fixtureTickets()
	originalFirst := tickets[0].ID

	_ = Apply(tickets, names, Options{Sort: SortPriority, Dir: Desc})
	require.Equal(t, originalFirst, tickets[0].ID)
}
