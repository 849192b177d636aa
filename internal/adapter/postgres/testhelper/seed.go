package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkossowski/agendum/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedItem creates an open task item with sensible defaults. Overrides
// mutate the item before insertion.
func SeedItem(t *testing.T, pool *pgxpool.Pool, overrides ...func(*domain.Item)) domain.Item {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ws := "W-test"
	item := domain.Item{
		ID:          uuid.New(),
		Type:        domain.ItemTypeTask,
		Status:      domain.StatusOpen,
		Title:       "test task " + suffix,
		WorkspaceID: &ws,
		Priority:    domain.PriorityNormal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, fn := range overrides {
		fn(&item)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, type, status, title, description, workspace_id,
			source_channel_id, source_thread_ts, assigned_to_user_id, requestor_user_id,
			created_by_user_id, project, due_date, priority, created_at, updated_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		item.ID, string(item.Type), string(item.Status), item.Title, item.Description,
		item.WorkspaceID, item.SourceChannelID, item.SourceThreadTS,
		item.AssignedToUserID, item.RequestorUserID, item.CreatedByUserID,
		item.Project, item.DueDate, item.Priority,
		item.CreatedAt, item.UpdatedAt, item.CompletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}
	return item
}

// SeedProfile creates a user profile with default notification prefs.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, workspaceID, userID string) domain.UserProfile {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	profile := domain.UserProfile{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_profiles (id, workspace_id, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		profile.ID, profile.WorkspaceID, profile.UserID, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}
	return profile
}
