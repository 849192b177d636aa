// Package thread implements the thread-title store and the thread
// dashboard query using PostgreSQL.
package thread

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
)

// Repo provides thread-title persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new thread repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const threadColumnsSQL = `id, workspace_id, channel_id, thread_ts, title, inferred_by,
last_activity_at, message_count, is_resolved, created_at, updated_at`

const upsertTitleSQL = `
INSERT INTO thread_titles (id, workspace_id, channel_id, thread_ts, title, inferred_by,
	last_activity_at, message_count, is_resolved, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now(), now())
ON CONFLICT (workspace_id, channel_id, thread_ts) DO UPDATE SET
	title = EXCLUDED.title,
	inferred_by = EXCLUDED.inferred_by,
	last_activity_at = EXCLUDED.last_activity_at,
	message_count = EXCLUDED.message_count,
	updated_at = now()`

// UpsertTitle writes the inferred title keyed by thread reference.
// Re-processing a thread refreshes title and activity but never flips
// is_resolved back.
func (r *Repo) UpsertTitle(ctx context.Context, t *domain.ThreadTitle) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err := q.Exec(ctx, upsertTitleSQL,
		t.ID, t.WorkspaceID, t.ChannelID, t.ThreadTS, t.Title, t.InferredBy,
		t.LastActivityAt, t.MessageCount,
	)
	return postgres.MapError(err, "thread_title", t.ThreadTS)
}

const getTitleSQL = `
SELECT ` + threadColumnsSQL + `
FROM thread_titles
WHERE workspace_id = $1 AND channel_id = $2 AND thread_ts = $3`

// GetTitle returns the stored title for a thread.
func (r *Repo) GetTitle(ctx context.Context, workspaceID, channelID, threadTS string) (*domain.ThreadTitle, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var t domain.ThreadTitle
	if err := pgxscan.Get(ctx, q, &t, getTitleSQL, workspaceID, channelID, threadTS); err != nil {
		return nil, postgres.MapError(err, "thread_title", threadTS)
	}
	return &t, nil
}

const markResolvedSQL = `
UPDATE thread_titles
SET is_resolved = true, updated_at = now()
WHERE workspace_id = $1 AND channel_id = $2 AND thread_ts = $3`

// MarkResolved flags the thread as resolved.
func (r *Repo) MarkResolved(ctx context.Context, workspaceID, channelID, threadTS string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, markResolvedSQL, workspaceID, channelID, threadTS)
	if err != nil {
		return postgres.MapError(err, "thread_title", threadTS)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "thread_title", threadTS)
	}
	return nil
}

// dashboardSQL joins titles with per-thread open-task and decision counts.
const dashboardSQL = `
SELECT t.thread_ts,
       t.title,
       t.channel_id,
       t.last_activity_at,
       t.message_count,
       t.is_resolved,
       (SELECT count(*) FROM items i
         WHERE i.source_channel_id = t.channel_id
           AND i.source_thread_ts = t.thread_ts
           AND i.type = 'task'
           AND i.status IN ('open', 'in_progress')) AS open_task_count,
       (SELECT count(*) FROM decisions d
         WHERE d.channel_id = t.channel_id
           AND d.thread_ts = t.thread_ts) AS decision_count
FROM thread_titles t
WHERE t.workspace_id = $1
ORDER BY t.last_activity_at DESC NULLS LAST
LIMIT $2`

// Dashboard returns the workspace's threads with open-work counts,
// most recently active first.
func (r *Repo) Dashboard(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.ThreadSummary
	if err := pgxscan.Select(ctx, q, &out, dashboardSQL, workspaceID, limit); err != nil {
		return nil, postgres.MapError(err, "thread_title", workspaceID)
	}
	return out, nil
}
