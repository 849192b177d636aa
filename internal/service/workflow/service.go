// Package workflow implements personal task workflows: snoozing,
// reassignment, priority changes, focus and meeting modes, and the
// stale-item sweep.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

const (
	defaultStaleAfterDays = 30
	defaultFocusTopN      = 5

	// focusScanLimit bounds the candidate set fetched before in-memory
	// focus suppression is applied.
	focusScanLimit = 500
)

// itemRepo defines the item store interface needed by workflows.
type itemRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Upsert(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error)
	Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	MarkStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// profileRepo defines the user-profile interface needed by workflows.
type profileRepo interface {
	GetByUserID(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
	SetFocusMode(ctx context.Context, workspaceID, userID string, enabled bool, settings *domain.FocusSettings) error
}

// txManager defines the transaction manager interface needed by workflows.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements workflow operations.
type Service struct {
	log            *slog.Logger
	items          itemRepo
	profiles       profileRepo
	tx             txManager
	staleAfterDays int
	focusTopN      int
	now            func() time.Time
}

// NewService creates a new workflow service instance. Non-positive
// staleAfterDays and focusTopN fall back to the defaults.
func NewService(log *slog.Logger, items itemRepo, profiles profileRepo, tx txManager, staleAfterDays, focusTopN int) *Service {
	if staleAfterDays <= 0 {
		staleAfterDays = defaultStaleAfterDays
	}
	if focusTopN <= 0 {
		focusTopN = defaultFocusTopN
	}
	return &Service{
		log:            log.With("service", "workflow"),
		items:          items,
		profiles:       profiles,
		tx:             tx,
		staleAfterDays: staleAfterDays,
		focusTopN:      focusTopN,
		now:            func() time.Time { return time.Now().UTC() },
	}
}
