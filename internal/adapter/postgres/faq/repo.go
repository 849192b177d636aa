// Package faq implements the FAQ knowledge store using PostgreSQL.
package faq

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
)

// Repo provides FAQ persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new FAQ repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const faqColumnsSQL = `id, workspace_id, question, answer, source_thread_ts, source_channel_id,
source_message_ts, tags, usage_count, is_canonical, created_at, updated_at`

const createFAQSQL = `
INSERT INTO faq_answers (id, workspace_id, question, answer, source_thread_ts, source_channel_id,
	source_message_ts, tags, usage_count, is_canonical, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, false, now(), now())`

// Create stores a new FAQ entry.
func (r *Repo) Create(ctx context.Context, f *domain.FAQAnswer) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err := q.Exec(ctx, createFAQSQL,
		f.ID, f.WorkspaceID, f.Question, f.Answer,
		f.SourceThreadTS, f.SourceChannelID, f.SourceMessageTS, f.Tags,
	)
	return postgres.MapError(err, "faq_answer", f.ID.String())
}

// GetByID returns one FAQ entry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FAQAnswer, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var f domain.FAQAnswer
	err := pgxscan.Get(ctx, q, &f,
		`SELECT `+faqColumnsSQL+` FROM faq_answers WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "faq_answer", id.String())
	}
	return &f, nil
}

const searchFAQSQL = `
SELECT ` + faqColumnsSQL + `
FROM faq_answers
WHERE workspace_id = $1
  AND (question ILIKE $2 OR answer ILIKE $2 OR tags ILIKE $2)
ORDER BY is_canonical DESC, usage_count DESC
LIMIT $3`

// Search matches the query against question, answer, and tags; canonical
// and frequently used entries rank first.
func (r *Repo) Search(ctx context.Context, workspaceID, query string, limit int) ([]domain.FAQAnswer, error) {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.FAQAnswer
	if err := pgxscan.Select(ctx, q, &out, searchFAQSQL, workspaceID, "%"+query+"%", limit); err != nil {
		return nil, postgres.MapError(err, "faq_answer", workspaceID)
	}
	return out, nil
}

const listFAQSQL = `
SELECT ` + faqColumnsSQL + `
FROM faq_answers
WHERE workspace_id = $1
ORDER BY created_at DESC`

// List returns every FAQ entry in the workspace; the similarity matcher
// scans this set in memory.
func (r *Repo) List(ctx context.Context, workspaceID string) ([]domain.FAQAnswer, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var out []domain.FAQAnswer
	if err := pgxscan.Select(ctx, q, &out, listFAQSQL, workspaceID); err != nil {
		return nil, postgres.MapError(err, "faq_answer", workspaceID)
	}
	return out, nil
}

const incrementUsageSQL = `
UPDATE faq_answers
SET usage_count = usage_count + 1, updated_at = now()
WHERE id = $1`

// IncrementUsage bumps the usage counter after a successful match.
func (r *Repo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, incrementUsageSQL, id)
	if err != nil {
		return postgres.MapError(err, "faq_answer", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "faq_answer", id.String())
	}
	return nil
}

const promoteSQL = `
UPDATE faq_answers
SET is_canonical = true, updated_at = now()
WHERE id = $1`

// PromoteToCanonical marks the entry as the canonical answer. The flag is
// one-way; there is no demotion.
func (r *Repo) PromoteToCanonical(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, promoteSQL, id)
	if err != nil {
		return postgres.MapError(err, "faq_answer", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "faq_answer", id.String())
	}
	return nil
}
