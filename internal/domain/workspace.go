package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceConfig holds per-workspace channel lists and settings. The
// channel lists are serialized as JSON arrays at the store boundary and
// consumed by digest channel scoping.
type WorkspaceConfig struct {
	ID            uuid.UUID
	WorkspaceID   string
	WorkspaceName *string

	WatchedChannels   []string
	ImportantChannels []string
	IgnoredChannels   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
