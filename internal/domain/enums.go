package domain

import "fmt"

// ItemType classifies what kind of work record an item is.
type ItemType string

const (
	ItemTypeTask         ItemType = "task"
	ItemTypeDecision     ItemType = "decision"
	ItemTypeObligation   ItemType = "obligation"
	ItemTypeQuestion     ItemType = "question"
	ItemTypeActionItem   ItemType = "action_item"
	ItemTypeNote         ItemType = "note"
	ItemTypeAnnouncement ItemType = "announcement"
)

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeTask, ItemTypeDecision, ItemTypeObligation, ItemTypeQuestion,
		ItemTypeActionItem, ItemTypeNote, ItemTypeAnnouncement:
		return true
	}
	return false
}

// ParseItemType validates a raw type string at the store boundary.
// Unknown values are rejected with ErrInvalidEnum, never coerced.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("item type %q: %w", s, ErrInvalidEnum)
	}
	return t, nil
}

// ItemStatus is the lifecycle state of an item.
type ItemStatus string

const (
	StatusOpen       ItemStatus = "open"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusDeferred   ItemStatus = "deferred"
	StatusCancelled  ItemStatus = "cancelled"
	StatusStale      ItemStatus = "stale"
)

func (s ItemStatus) String() string { return string(s) }

func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusDeferred,
		StatusCancelled, StatusStale:
		return true
	}
	return false
}

// IsActive reports whether the status counts as "still being worked on"
// for digests, focus mode, and stale sweeping.
func (s ItemStatus) IsActive() bool {
	return s == StatusOpen || s == StatusInProgress
}

// ParseItemStatus validates a raw status string at the store boundary.
// The legacy alias "done" normalizes to StatusCompleted; any other unknown
// value is rejected with ErrInvalidEnum.
func ParseItemStatus(s string) (ItemStatus, error) {
	if s == "done" {
		return StatusCompleted, nil
	}
	st := ItemStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("item status %q: %w", s, ErrInvalidEnum)
	}
	return st, nil
}

// Priority levels. Anything outside the range is rejected at the boundary.
const (
	PriorityNormal = 0
	PriorityHigh   = 1
	PriorityUrgent = 2
)

// ValidPriority reports whether p is one of the three recognized levels.
func ValidPriority(p int) bool {
	return p >= PriorityNormal && p <= PriorityUrgent
}

// NotifyAction is the outcome of a notification policy decision.
type NotifyAction string

const (
	NotifyInstant NotifyAction = "instant"
	NotifyBatch   NotifyAction = "batch"
	NotifySilent  NotifyAction = "silent"
)

func (a NotifyAction) String() string { return string(a) }

// OrderBy selects the sort order for item queries.
type OrderBy string

const (
	OrderCreatedAtDesc OrderBy = "created_at_desc"
	OrderUpdatedAtDesc OrderBy = "updated_at_desc"
	OrderDueDateAsc    OrderBy = "due_date_asc"
	OrderDueDateDesc   OrderBy = "due_date_desc"
	OrderPriorityDesc  OrderBy = "priority_desc"
)

func (o OrderBy) IsValid() bool {
	switch o {
	case OrderCreatedAtDesc, OrderUpdatedAtDesc, OrderDueDateAsc,
		OrderDueDateDesc, OrderPriorityDesc:
		return true
	}
	return false
}
