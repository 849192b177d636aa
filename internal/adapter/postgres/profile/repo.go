// Package profile implements the user-profile store using PostgreSQL.
// Notification preferences and focus settings are typed documents,
// serialized to JSON only at this boundary.
package profile

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

// Repo provides user-profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type profileRow struct {
	ID                uuid.UUID `db:"id"`
	WorkspaceID       string    `db:"workspace_id"`
	UserID            string    `db:"user_id"`
	UserName          *string   `db:"user_name"`
	UserEmail         *string   `db:"user_email"`
	NotificationPrefs []byte    `db:"notification_prefs"`
	FocusModeEnabled  bool      `db:"focus_mode_enabled"`
	FocusSettings     []byte    `db:"focus_settings"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r profileRow) toDomain() (*domain.UserProfile, error) {
	p := &domain.UserProfile{
		ID:               r.ID,
		WorkspaceID:      r.WorkspaceID,
		UserID:           r.UserID,
		UserName:         r.UserName,
		UserEmail:        r.UserEmail,
		FocusModeEnabled: r.FocusModeEnabled,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if len(r.NotificationPrefs) > 0 {
		var prefs domain.NotificationPrefs
		if err := json.Unmarshal(r.NotificationPrefs, &prefs); err != nil {
			return nil, fmt.Errorf("user_profile %s: decode notification prefs: %w", r.UserID, err)
		}
		p.NotificationPrefs = &prefs
	}
	if len(r.FocusSettings) > 0 {
		var fs domain.FocusSettings
		if err := json.Unmarshal(r.FocusSettings, &fs); err != nil {
			return nil, fmt.Errorf("user_profile %s: decode focus settings: %w", r.UserID, err)
		}
		p.FocusSettings = &fs
	}
	return p, nil
}

const getProfileSQL = `
SELECT id, workspace_id, user_id, user_name, user_email,
       notification_prefs, focus_mode_enabled, focus_settings,
       created_at, updated_at
FROM user_profiles
WHERE workspace_id = $1 AND user_id = $2`

// GetByUserID returns the profile for a workspace user.
func (r *Repo) GetByUserID(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	var row profileRow
	if err := pgxscan.Get(ctx, q, &row, getProfileSQL, workspaceID, userID); err != nil {
		return nil, postgres.MapError(err, "user_profile", userID)
	}
	return row.toDomain()
}

const upsertProfileSQL = `
INSERT INTO user_profiles (
	id, workspace_id, user_id, user_name, user_email,
	notification_prefs, focus_mode_enabled, focus_settings,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (workspace_id, user_id) DO UPDATE SET
	user_name = EXCLUDED.user_name,
	user_email = EXCLUDED.user_email,
	notification_prefs = EXCLUDED.notification_prefs,
	focus_mode_enabled = EXCLUDED.focus_mode_enabled,
	focus_settings = EXCLUDED.focus_settings,
	updated_at = now()`

// Upsert writes the profile keyed by (workspace, user).
func (r *Repo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	prefsJSON, err := marshalOrNil(p.NotificationPrefs)
	if err != nil {
		return fmt.Errorf("user_profile %s: encode notification prefs: %w", p.UserID, err)
	}
	focusJSON, err := marshalOrNil(p.FocusSettings)
	if err != nil {
		return fmt.Errorf("user_profile %s: encode focus settings: %w", p.UserID, err)
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err = q.Exec(ctx, upsertProfileSQL,
		p.ID, p.WorkspaceID, p.UserID, p.UserName, p.UserEmail,
		prefsJSON, p.FocusModeEnabled, focusJSON,
	)
	return postgres.MapError(err, "user_profile", p.UserID)
}

const setFocusModeSQL = `
UPDATE user_profiles
SET focus_mode_enabled = $3, focus_settings = $4, updated_at = now()
WHERE workspace_id = $1 AND user_id = $2`

// SetFocusMode flips focus mode for a user; a nil settings value keeps
// the stored settings.
func (r *Repo) SetFocusMode(ctx context.Context, workspaceID, userID string, enabled bool, settings *domain.FocusSettings) error {
	existing, err := r.GetByUserID(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = existing.FocusSettings
	}
	focusJSON, err := marshalOrNil(settings)
	if err != nil {
		return fmt.Errorf("user_profile %s: encode focus settings: %w", userID, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	_, err = q.Exec(ctx, setFocusModeSQL, workspaceID, userID, enabled, focusJSON)
	return postgres.MapError(err, "user_profile", userID)
}

// marshalOrNil keeps absent documents as SQL NULL instead of "null".
func marshalOrNil[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
