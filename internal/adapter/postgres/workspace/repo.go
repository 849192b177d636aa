// Package workspace implements the workspace-config store using
// PostgreSQL. Channel lists are JSON arrays at this boundary.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
)

// Repo provides workspace-config persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new workspace repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type configRow struct {
	ID                uuid.UUID `db:"id"`
	WorkspaceID       string    `db:"workspace_id"`
	WorkspaceName     *string   `db:"workspace_name"`
	WatchedChannels   []byte    `db:"watched_channels"`
	ImportantChannels []byte    `db:"important_channels"`
	IgnoredChannels   []byte    `db:"ignored_channels"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r configRow) toDomain() (*domain.WorkspaceConfig, error) {
	cfg := &domain.WorkspaceConfig{
		ID:            r.ID,
		WorkspaceID:   r.WorkspaceID,
		WorkspaceName: r.WorkspaceName,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, col := range []struct {
		raw []byte
		dst *[]string
	}{
		{r.WatchedChannels, &cfg.WatchedChannels},
		{r.ImportantChannels, &cfg.ImportantChannels},
		{r.IgnoredChannels, &cfg.IgnoredChannels},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("workspace_config %s: decode channel list: %w", r.WorkspaceID, err)
		}
	}
	return cfg, nil
}

const getConfigSQL = `
SELECT id, workspace_id, workspace_name, watched_channels, important_channels, ignored_channels,
       created_at, updated_at
FROM workspace_configs
WHERE workspace_id = $1`

// Get returns the config for a workspace.
func (r *Repo) Get(ctx context.Context, workspaceID string) (*domain.WorkspaceConfig, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var row configRow
	if err := pgxscan.Get(ctx, q, &row, getConfigSQL, workspaceID); err != nil {
		return nil, postgres.MapError(err, "workspace_config", workspaceID)
	}
	return row.toDomain()
}

const upsertConfigSQL = `
INSERT INTO workspace_configs (id, workspace_id, workspace_name,
	watched_channels, important_channels, ignored_channels, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (workspace_id) DO UPDATE SET
	workspace_name = EXCLUDED.workspace_name,
	watched_channels = EXCLUDED.watched_channels,
	important_channels = EXCLUDED.important_channels,
	ignored_channels = EXCLUDED.ignored_channels,
	updated_at = now()`

// Upsert writes the config keyed by workspace id.
func (r *Repo) Upsert(ctx context.Context, cfg *domain.WorkspaceConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	watched, err := json.Marshal(orEmpty(cfg.WatchedChannels))
	if err != nil {
		return fmt.Errorf("workspace_config %s: encode channel list: %w", cfg.WorkspaceID, err)
	}
	important, err := json.Marshal(orEmpty(cfg.ImportantChannels))
	if err != nil {
		return fmt.Errorf("workspace_config %s: encode channel list: %w", cfg.WorkspaceID, err)
	}
	ignored, err := json.Marshal(orEmpty(cfg.IgnoredChannels))
	if err != nil {
		return fmt.Errorf("workspace_config %s: encode channel list: %w", cfg.WorkspaceID, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err = q.Exec(ctx, upsertConfigSQL,
		cfg.ID, cfg.WorkspaceID, cfg.WorkspaceName, watched, important, ignored,
	)
	return postgres.MapError(err, "workspace_config", cfg.WorkspaceID)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
