package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultSearchLimit caps result size when a filter does not set one.
	// No upper bound is enforced at this layer.
	DefaultSearchLimit = 50
)

// ItemFilter is the declarative filter specification shared by ad hoc
// search, saved views, digests, and the policy engines. All clauses are
// combined with AND; a list-valued Types/Statuses/Assignees clause is an
// OR of equalities within the list.
type ItemFilter struct {
	// Query matches case-insensitively against title, description, and
	// raw snippet.
	Query *string `json:"query,omitempty"`

	Types     []ItemType   `json:"types,omitempty"`
	Statuses  []ItemStatus `json:"statuses,omitempty"`
	Assignees []string     `json:"assignees,omitempty"`

	Requestor *string `json:"requestor,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	Project   *string `json:"project,omitempty"`
	Topic     *string `json:"topic,omitempty"`

	ChannelID  *string  `json:"channel_id,omitempty"`
	ChannelIDs []string `json:"channel_ids,omitempty"`

	WorkspaceID *string `json:"workspace_id,omitempty"`

	// Inclusive bounds on created_at.
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Due-date bounds (used by digests: "due today", "overdue").
	DueBefore *time.Time `json:"due_before,omitempty"`
	DueFrom   *time.Time `json:"due_from,omitempty"`
	DueTo     *time.Time `json:"due_to,omitempty"`

	// MinPriority keeps items with priority >= the given level.
	MinPriority *int `json:"min_priority,omitempty"`

	// CompletedSince keeps items completed at or after the instant.
	CompletedSince *time.Time `json:"completed_since,omitempty"`

	// RelevantToUser keeps items where the user is assignee, requestor,
	// or creator (OR of the three).
	RelevantToUser *string `json:"relevant_to_user,omitempty"`

	// NoAssignee keeps only items with no assigned user.
	NoAssignee bool `json:"no_assignee,omitempty"`
	// NoDueDate keeps only items with no due date.
	NoDueDate bool `json:"no_due_date,omitempty"`

	OrderBy OrderBy `json:"order_by,omitempty"`
	Limit   int     `json:"limit,omitempty"`
}

// Normalize applies defaults: unset/unknown OrderBy falls back to
// updated_at descending, non-positive limits to DefaultSearchLimit.
func (f *ItemFilter) Normalize() {
	if !f.OrderBy.IsValid() {
		f.OrderBy = OrderUpdatedAtDesc
	}
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}
}

// Validate rejects unknown enum values with ErrInvalidEnum. Everything
// else in a filter degrades to empty results rather than erroring.
func (f *ItemFilter) Validate() error {
	for _, t := range f.Types {
		if !t.IsValid() {
			return fmt.Errorf("filter type %q: %w", t, ErrInvalidEnum)
		}
	}
	for _, s := range f.Statuses {
		if !s.IsValid() {
			return fmt.Errorf("filter status %q: %w", s, ErrInvalidEnum)
		}
	}
	return nil
}
