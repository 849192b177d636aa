// Package decision implements the decision-log store using PostgreSQL.
// Decisions are append-mostly: after creation only the project backfill
// touches a row.
package decision

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
)

// Repo provides decision persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new decision repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const decisionColumnsSQL = `id, workspace_id, item_id, thread_ts, channel_id, decision_message_ts,
decision_text, project, involved_user_ids, created_at, updated_at`

const createDecisionSQL = `
INSERT INTO decisions (id, workspace_id, item_id, thread_ts, channel_id, decision_message_ts,
	decision_text, project, involved_user_ids, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`

// Create stores a decision record.
func (r *Repo) Create(ctx context.Context, d *domain.Decision) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err := q.Exec(ctx, createDecisionSQL,
		d.ID, d.WorkspaceID, d.ItemID, d.ThreadTS, d.ChannelID, d.DecisionMessageTS,
		d.DecisionText, d.Project, d.InvolvedUserIDs,
	)
	return postgres.MapError(err, "decision", d.ID.String())
}

const listByProjectSQL = `
SELECT ` + decisionColumnsSQL + `
FROM decisions
WHERE workspace_id = $1 AND project = $2
ORDER BY created_at DESC
LIMIT $3`

// ListByProject returns a project's decisions, newest first.
func (r *Repo) ListByProject(ctx context.Context, workspaceID, project string, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.Decision
	if err := pgxscan.Select(ctx, q, &out, listByProjectSQL, workspaceID, project, limit); err != nil {
		return nil, postgres.MapError(err, "decision", project)
	}
	return out, nil
}

const listByThreadSQL = `
SELECT ` + decisionColumnsSQL + `
FROM decisions
WHERE channel_id = $1 AND thread_ts = $2
ORDER BY created_at ASC`

// ListByThread returns the decisions captured from one thread.
func (r *Repo) ListByThread(ctx context.Context, channelID, threadTS string) ([]domain.Decision, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.Decision
	if err := pgxscan.Select(ctx, q, &out, listByThreadSQL, channelID, threadTS); err != nil {
		return nil, postgres.MapError(err, "decision", threadTS)
	}
	return out, nil
}

const listSinceSQL = `
SELECT ` + decisionColumnsSQL + `
FROM decisions
WHERE workspace_id = $1 AND created_at >= $2
ORDER BY created_at DESC`

// ListSince returns workspace decisions created at or after the instant;
// digests use this for "decisions while you were away".
func (r *Repo) ListSince(ctx context.Context, workspaceID string, since time.Time) ([]domain.Decision, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.Decision
	if err := pgxscan.Select(ctx, q, &out, listSinceSQL, workspaceID, since); err != nil {
		return nil, postgres.MapError(err, "decision", workspaceID)
	}
	return out, nil
}

const backfillProjectSQL = `
UPDATE decisions
SET project = $3, updated_at = now()
WHERE channel_id = $1 AND thread_ts = $2 AND project IS NULL`

// BackfillProject sets the project on a thread's decisions that were
// captured before the project was known.
func (r *Repo) BackfillProject(ctx context.Context, channelID, threadTS, project string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, backfillProjectSQL, channelID, threadTS, project)
	if err != nil {
		return 0, postgres.MapError(err, "decision", threadTS)
	}
	return tag.RowsAffected(), nil
}
