package domain

import (
	"time"

	"github.com/google/uuid"
)

// Title inference methods recorded on ThreadTitle.InferredBy.
const (
	InferredByFirstMessage = "first_message"
	InferredByLLM          = "llm"
)

// ThreadTitle is the inferred title of one conversation thread, unique by
// thread reference. Re-processing a thread upserts the row.
type ThreadTitle struct {
	ID          uuid.UUID
	WorkspaceID string
	ChannelID   string
	ThreadTS    string

	Title      string
	InferredBy string

	LastActivityAt *time.Time
	MessageCount   int
	IsResolved     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ThreadSummary is one row of the thread dashboard: a title plus activity
// and open-work counts.
type ThreadSummary struct {
	ThreadTS       string
	Title          string
	ChannelID      string
	LastActivityAt *time.Time
	MessageCount   int
	OpenTaskCount  int
	DecisionCount  int
	IsResolved     bool
}
