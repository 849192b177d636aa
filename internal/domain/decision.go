package domain

import (
	"time"

	"github.com/google/uuid"
)

// Decision is an extracted decision statement, optionally linked to the
// item created for it. Decisions are not mutated after extraction except
// for project backfill.
type Decision struct {
	ID          uuid.UUID
	WorkspaceID string
	ItemID      *uuid.UUID

	ThreadTS          *string
	ChannelID         *string
	DecisionMessageTS *string

	DecisionText string
	Project      *string
	// InvolvedUserIDs is stored comma-joined; use InvolvedUsers.
	InvolvedUserIDs *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvolvedUsers splits the comma-joined involved user ids.
func (d *Decision) InvolvedUsers() []string { return splitCSV(d.InvolvedUserIDs) }

// SetInvolvedUsers stores the user ids comma-joined (nil for empty).
func (d *Decision) SetInvolvedUsers(ids []string) { d.InvolvedUserIDs = joinCSV(ids) }
