package domain

import (
	"time"

	"github.com/google/uuid"
)

// View is a saved, reusable filter specification over items. A nil UserID
// means the view is shared across the workspace.
type View struct {
	ID          uuid.UUID
	WorkspaceID string
	UserID      *string

	Name         string
	Description  *string
	IsPredefined bool

	// Filter is the declarative specification executed by the filter
	// evaluator; serialized to JSON at the store boundary.
	Filter ItemFilter

	CreatedAt time.Time
	UpdatedAt time.Time
}
