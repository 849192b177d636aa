// Package view implements the saved-view store using PostgreSQL. The
// filter specification is stored as a JSON document and decoded back into
// the typed domain.ItemFilter on read.
package view

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/domain"
)

// Repo provides saved-view persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new view repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type viewRow struct {
	ID           uuid.UUID `db:"id"`
	WorkspaceID  string    `db:"workspace_id"`
	UserID       *string   `db:"user_id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	IsPredefined bool      `db:"is_predefined"`
	Filter       []byte    `db:"filter"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r viewRow) toDomain() (*domain.View, error) {
	v := &domain.View{
		ID:           r.ID,
		WorkspaceID:  r.WorkspaceID,
		UserID:       r.UserID,
		Name:         r.Name,
		Description:  r.Description,
		IsPredefined: r.IsPredefined,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Filter, &v.Filter); err != nil {
		return nil, fmt.Errorf("view %s: decode filter: %w", r.ID, err)
	}
	// reject filters whose stored enums drifted from the closed sets
	if err := v.Filter.Validate(); err != nil {
		return nil, fmt.Errorf("view %s: %w", r.ID, err)
	}
	return v, nil
}

const viewColumnsSQL = `id, workspace_id, user_id, name, description, is_predefined, filter, created_at, updated_at`

const createViewSQL = `
INSERT INTO views (id, workspace_id, user_id, name, description, is_predefined, filter, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

// Create stores a new view. The filter is validated before encoding.
func (r *Repo) Create(ctx context.Context, v *domain.View) error {
	if err := v.Filter.Validate(); err != nil {
		return err
	}
	filterJSON, err := json.Marshal(v.Filter)
	if err != nil {
		return fmt.Errorf("view %s: encode filter: %w", v.Name, err)
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err = q.Exec(ctx, createViewSQL,
		v.ID, v.WorkspaceID, v.UserID, v.Name, v.Description, v.IsPredefined, filterJSON,
	)
	return postgres.MapError(err, "view", v.Name)
}

// GetByID returns one view by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.View, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var row viewRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+viewColumnsSQL+` FROM views WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "view", id.String())
	}
	return row.toDomain()
}

const getViewByNameSQL = `
SELECT ` + viewColumnsSQL + `
FROM views
WHERE workspace_id = $1 AND name = $2
  AND (user_id = $3 OR user_id IS NULL)
ORDER BY user_id NULLS LAST
LIMIT 1`

// GetByName resolves a view by name: the user's own view shadows a shared
// workspace view with the same name.
func (r *Repo) GetByName(ctx context.Context, workspaceID, name, userID string) (*domain.View, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var row viewRow
	if err := pgxscan.Get(ctx, q, &row, getViewByNameSQL, workspaceID, name, userID); err != nil {
		return nil, postgres.MapError(err, "view", name)
	}
	return row.toDomain()
}

const listViewsSQL = `
SELECT ` + viewColumnsSQL + `
FROM views
WHERE workspace_id = $1 AND (user_id = $2 OR user_id IS NULL)
ORDER BY is_predefined DESC, name ASC`

// List returns the views visible to a user: their own plus shared ones.
func (r *Repo) List(ctx context.Context, workspaceID, userID string) ([]domain.View, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var rows []viewRow
	if err := pgxscan.Select(ctx, q, &rows, listViewsSQL, workspaceID, userID); err != nil {
		return nil, postgres.MapError(err, "view", workspaceID)
	}
	views := make([]domain.View, 0, len(rows))
	for _, row := range rows {
		v, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

const updateViewSQL = `
UPDATE views
SET name = $2, description = $3, filter = $4, updated_at = now()
WHERE id = $1`

// Update rewrites the mutable fields of a view.
func (r *Repo) Update(ctx context.Context, v *domain.View) error {
	if err := v.Filter.Validate(); err != nil {
		return err
	}
	filterJSON, err := json.Marshal(v.Filter)
	if err != nil {
		return fmt.Errorf("view %s: encode filter: %w", v.ID, err)
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, updateViewSQL, v.ID, v.Name, v.Description, filterJSON)
	if err != nil {
		return postgres.MapError(err, "view", v.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "view", v.ID.String())
	}
	return nil
}

// Delete removes a view.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM views WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "view", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "view", id.String())
	}
	return nil
}
