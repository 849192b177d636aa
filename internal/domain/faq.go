package domain

import (
	"time"

	"github.com/google/uuid"
)

// FAQAnswer is a question/answer pair captured from a resolved thread.
// The usage counter increments on every successful similarity match; the
// canonical flag is a one-way promotion.
type FAQAnswer struct {
	ID          uuid.UUID
	WorkspaceID string

	Question string
	Answer   string

	SourceThreadTS  *string
	SourceChannelID *string
	SourceMessageTS *string

	// Tags is stored comma-joined; use TagList.
	Tags *string

	UsageCount  int
	IsCanonical bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagList splits the comma-joined tags column into a slice.
func (f *FAQAnswer) TagList() []string { return splitCSV(f.Tags) }

// SetTags stores a tag slice in comma-joined form (nil for empty).
func (f *FAQAnswer) SetTags(tags []string) { f.Tags = joinCSV(tags) }
