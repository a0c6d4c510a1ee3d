package service

import (
	"strconv"

	"github.com/spec-kit/tracker-service/internal/domain"
)

// FieldChange is one detected difference between a ticket's current state
// and an update patch. Each change maps to exactly one activity entry.
type FieldChange struct {
	Action   domain.ActivityAction
	Field    string
	OldValue string
	NewValue string
}

// TicketPatch is a partial update; nil fields are untouched. An empty
// AssigneeID clears the assignee.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	AssigneeID  *string
	ObserverIDs []string
	Details     *DetailsPatch
}

// DetailsPatch is a partial update of the nested details block.
type DetailsPatch struct {
	Content        *string
	ExecutorID     *string
	Customer       *string
	StartDate      *string
	EndDate        *string
	Cost           *int64
	AdditionalCost *int64
	Notes          *string
}

// diffTicket computes the list of changes the patch would make, without
// mutating the ticket. displayName resolves user IDs for history entries.
func diffTicket(t *domain.Ticket, patch TicketPatch, displayName func(string) string) []FieldChange {
	var changes []FieldChange

	if patch.Title != nil && *patch.Title != t.Title {
		changes = append(changes, FieldChange{
			Action: domain.ActivityUpdated, Field: "title",
			OldValue: t.Title, NewValue: *patch.Title,
		})
	}
	if patch.Description != nil && *patch.Description != t.Description {
		changes = append(changes, FieldChange{
			Action: domain.ActivityUpdated, Field: "description",
			OldValue: t.Description, NewValue: *patch.Description,
		})
	}
	if patch.Status != nil && *patch.Status != t.Status {
		changes = append(changes, FieldChange{
			Action: domain.ActivityStatusChanged, Field: "status",
			OldValue: string(t.Status), NewValue: string(*patch.Status),
		})
	}
	if patch.Priority != nil && *patch.Priority != t.Priority {
		changes = append(changes, FieldChange{
			Action: domain.ActivityPriorityChanged, Field: "priority",
			OldValue: string(t.Priority), NewValue: string(*patch.Priority),
		})
	}
	if patch.AssigneeID != nil {
		oldID := refValue(t.AssigneeID)
		newID := *patch.AssigneeID
		if oldID != newID {
			changes = append(changes, FieldChange{
				Action: domain.ActivityAssigneeChanged, Field: "assignee",
				OldValue: nameOrEmpty(oldID, displayName),
				NewValue: nameOrEmpty(newID, displayName),
			})
		}
	}
	if patch.ObserverIDs != nil {
		changes = append(changes, diffObservers(t.ObserverIDs, patch.ObserverIDs, displayName)...)
	}
	if patch.Details != nil {
		changes = append(changes, diffDetails(&t.Details, patch.Details, displayName)...)
	}
	return changes
}

// diffObservers computes the symmetric difference between the current and
// requested observer sets: one entry per removed member, one per added.
func diffObservers(current, requested []string, displayName func(string) string) []FieldChange {
	requested = dedupe(requested)
	currentSet := toSet(current)
	requestedSet := toSet(requested)

	var changes []FieldChange
	for _, id := range current {
		if !requestedSet[id] {
			changes = append(changes, FieldChange{
				Action: domain.ActivityObserverRemoved, Field: "observers",
				OldValue: displayName(id),
			})
		}
	}
	for _, id := range requested {
		if !currentSet[id] {
			changes = append(changes, FieldChange{
				Action: domain.ActivityObserverAdded, Field: "observers",
				NewValue: displayName(id),
			})
		}
	}
	return changes
}

func diffDetails(current *domain.TicketDetails, patch *DetailsPatch, displayName func(string) string) []FieldChange {
	var changes []FieldChange
	addString := func(field, oldVal string, newVal *string) {
		if newVal != nil && *newVal != oldVal {
			changes = append(changes, FieldChange{
				Action: domain.ActivityUpdated, Field: "details." + field,
				OldValue: oldVal, NewValue: *newVal,
			})
		}
	}
	addInt := func(field string, oldVal int64, newVal *int64) {
		if newVal != nil && *newVal != oldVal {
			changes = append(changes, FieldChange{
				Action: domain.ActivityUpdated, Field: "details." + field,
				OldValue: strconv.FormatInt(oldVal, 10),
				NewValue: strconv.FormatInt(*newVal, 10),
			})
		}
	}

	addString("content", current.Content, patch.Content)
	addString("customer", current.Customer, patch.Customer)
	addString("startDate", current.StartDate, patch.StartDate)
	addString("endDate", current.EndDate, patch.EndDate)
	addInt("cost", current.Cost, patch.Cost)
	addInt("additionalCost", current.AdditionalCost, patch.AdditionalCost)
	addString("notes", current.Notes, patch.Notes)

	if patch.ExecutorID != nil {
		oldID := refValue(current.ExecutorID)
		if oldID != *patch.ExecutorID {
			changes = append(changes, FieldChange{
				Action: domain.ActivityUpdated, Field: "details.executor",
				OldValue: nameOrEmpty(oldID, displayName),
				NewValue: nameOrEmpty(*patch.ExecutorID, displayName),
			})
		}
	}
	return changes
}

// applyPatch writes every patch field onto the ticket. Call only after
// diffTicket reported at least one change; setting an equal value is a
// harmless no-op either way.
func applyPatch(t *domain.Ticket, patch TicketPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			t.AssigneeID = nil
		} else {
			id := *patch.AssigneeID
			t.AssigneeID = &id
		}
	}
	if patch.ObserverIDs != nil {
		t.ObserverIDs = dedupe(patch.ObserverIDs)
	}
	if patch.Details != nil {
		applyDetailsPatch(&t.Details, patch.Details)
	}
}

func applyDetailsPatch(details *domain.TicketDetails, patch *DetailsPatch) {
	if patch.Content != nil {
		details.Content = *patch.Content
	}
	if patch.ExecutorID != nil {
		if *patch.ExecutorID == "" {
			details.ExecutorID = nil
		} else {
			id := *patch.ExecutorID
			details.ExecutorID = &id
		}
	}
	if patch.Customer != nil {
		details.Customer = *patch.Customer
	}
	if patch.StartDate != nil {
		details.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		details.EndDate = *patch.EndDate
	}
	if patch.Cost != nil {
		details.Cost = *patch.Cost
	}
	if patch.AdditionalCost != nil {
		details.AdditionalCost = *patch.AdditionalCost
	}
	if patch.Notes != nil {
		details.Notes = *patch.Notes
	}
}

func refValue(ref *string) string {
	if ref == nil {
		return ""
	}
	return *ref
}

func nameOrEmpty(id string, displayName func(string) string) string {
	if id == "" {
		return ""
	}
	return displayName(id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
