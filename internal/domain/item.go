package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLen bounds item titles at the store boundary.
const MaxTitleLen = 500

// Item is the central work record extracted from (or created alongside)
// conversational text: a task, decision, question, announcement, etc.
type Item struct {
	ID     uuid.UUID
	Type   ItemType
	Status ItemStatus

	Title       string
	Description *string
	RawSnippet  *string

	WorkspaceID *string

	// Chat-platform source references.
	SourceChannelID   *string
	SourceChannelName *string
	SourceThreadTS    *string
	SourceMessageTS   *string
	SourceURL         *string

	AssignedToUserID   *string
	AssignedToUserName *string
	RequestorUserID    *string
	RequestorUserName  *string
	CreatedByUserID    *string

	Project *string
	Topic   *string
	// Labels and Tags are stored comma-joined; use LabelList/TagList.
	Labels *string
	Tags   *string

	DueDate  *time.Time
	Priority int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// TagList splits the comma-joined tags column into a slice.
func (i *Item) TagList() []string { return splitCSV(i.Tags) }

// LabelList splits the comma-joined labels column into a slice.
func (i *Item) LabelList() []string { return splitCSV(i.Labels) }

// SetTags stores a tag slice in comma-joined form (nil for empty).
func (i *Item) SetTags(tags []string) { i.Tags = joinCSV(tags) }

// SetLabels stores a label slice in comma-joined form (nil for empty).
func (i *Item) SetLabels(labels []string) { i.Labels = joinCSV(labels) }

// IsOverdue reports whether the item has a due date in the past and is
// still active.
func (i *Item) IsOverdue(now time.Time) bool {
	return i.DueDate != nil && i.DueDate.Before(now) && i.Status.IsActive()
}

// Validate checks the item invariants enforced at the store boundary.
func (i *Item) Validate() error {
	if !i.Type.IsValid() {
		return NewValidationError("type", "unknown item type "+string(i.Type))
	}
	if !i.Status.IsValid() {
		return NewValidationError("status", "unknown item status "+string(i.Status))
	}
	if strings.TrimSpace(i.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if len(i.Title) > MaxTitleLen {
		return NewValidationError("title", "title exceeds maximum length")
	}
	if !ValidPriority(i.Priority) {
		return NewValidationError("priority", "priority must be 0, 1, or 2")
	}
	if i.Status == StatusCompleted && i.CompletedAt == nil {
		return NewValidationError("completed_at", "completed items require a completion timestamp")
	}
	return nil
}

// ItemHistory is one immutable audit record: a single field change on a
// single item, written as a side effect of an upsert. History rows are
// never updated and are deleted only by cascading item deletion.
type ItemHistory struct {
	ID           int64
	ItemID       uuid.UUID
	FieldChanged string
	OldValue     *string
	NewValue     *string
	ChangedAt    time.Time
	ChangedBy    *string
}

func splitCSV(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	parts := strings.Split(*s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinCSV(vals []string) *string {
	if len(vals) == 0 {
		return nil
	}
	s := strings.Join(vals, ",")
	return &s
}
