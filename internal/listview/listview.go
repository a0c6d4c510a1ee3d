package listview

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// SortField enumerates the sortable ticket columns.
type SortField string

const (
	SortID        SortField = "id"
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
	SortPriority  SortField = "priority"
	SortType      SortField = "type"
	SortAssignee  SortField = "assignee"
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// PageSizes are the fixed page-size choices.
var PageSizes = []int{10, 20, 50, 100}

const defaultPageSize = 20

// Options describes one derived view over the ticket collection.
type Options struct {
	// Search matches case-insensitively against title, description, id,
	// customer, reporter name and assignee name.
	Search string
	// DateFrom/DateTo bound the creation date (calendar day, inclusive),
	// formatted 2006-01-02. Empty bounds are open.
	DateFrom string
	DateTo   string
	Sort     SortField
	Dir      SortDirection
	Page     int
	PageSize int
}

// Page is one page of the filtered, sorted collection.
type Page struct {
	Items      []domain.Ticket
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Enum ranks follow declaration order, not lexical order.
var (
	statusRank = map[domain.TicketStatus]int{
		domain.TicketStatusOpen:       0,
		domain.TicketStatusInProgress: 1,
		domain.TicketStatusResolved:   2,
		domain.TicketStatusClosed:     3,
	}
	priorityRank = map[domain.TicketPriority]int{
		domain.TicketPriorityLow:      0,
		domain.TicketPriorityMedium:   1,
		domain.TicketPriorityHigh:     2,
		domain.TicketPriorityCritical: 3,
	}
	typeRank = map[domain.TicketType]int{
		domain.TicketTypeBug:         0,
		domain.TicketTypeFeature:     1,
		domain.TicketTypeTask:        2,
		domain.TicketTypeImprovement: 3,
	}
)

// Apply filters, sorts and paginates tickets without mutating the input.
// userNames maps user IDs to display names for reporter/assignee matching.
func Apply(tickets []domain.Ticket, userNames map[string]string, opts Options) Page {
	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if !matchesSearch(&ticket, userNames, opts.Search) {
			continue
		}
		if !matchesDateRange(&ticket, opts.DateFrom, opts.DateTo) {
			continue
		}
		filtered = append(filtered, ticket)
	}

	sortTickets(filtered, userNames, opts.Sort, opts.Dir)

	pageSize := normalizePageSize(opts.PageSize)
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func matchesSearch(t *domain.Ticket, userNames map[string]string, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	fields := []string{
		t.Title,
		t.Description,
		t.ID,
		t.Details.Customer,
		userNames[t.ReporterID],
	}
	if t.AssigneeID != nil {
		fields = append(fields, userNames[*t.AssigneeID])
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesDateRange(t *domain.Ticket, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	day := t.CreatedAt.Format("2006-01-02")
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}

func sortTickets(tickets []domain.Ticket, userNames map[string]string, field SortField, dir SortDirection) {
	if field == "" {
		field = SortCreatedAt
	}
	assigneeName := func(t *domain.Ticket) string {
		if t.AssigneeID == nil {
			return ""
		}
		return strings.ToLower(userNames[*t.AssigneeID])
	}
	compare := func(a, b *domain.Ticket) int {
		switch field {
		case SortID:
			ai, _ := strconv.Atoi(a.ID)
			bi, _ := strconv.Atoi(b.ID)
			return ai - bi
		case SortTitle:
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortStatus:
			return statusRank[a.Status] - statusRank[b.Status]
		case SortPriority:
			return priorityRank[a.Priority] - priorityRank[b.Priority]
		case SortType:
			return typeRank[a.Type] - typeRank[b.Type]
		case SortAssignee:
			return strings.Compare(assigneeName(a), assigneeName(b))
		case SortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		c := compare(&tickets[i], &tickets[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
}

func normalizePageSize(size int) int {
	for _, allowed := range PageSizes {
		if size == allowed {
			return size
		}
	}
	return defaultPageSize
}
