// Package agenda implements the core work-item operations: upsert with
// audit history, lookup, search, completion, and deletion.
package agenda

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// itemRepo defines the item store interface needed by the agenda service.
type itemRepo interface {
	Upsert(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.ItemHistory, error)
}

// txManager defines the transaction manager interface needed by the
// agenda service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements agenda operations.
type Service struct {
	log   *slog.Logger
	items itemRepo
	tx    txManager
	now   func() time.Time
}

// NewService creates a new agenda service instance.
func NewService(log *slog.Logger, items itemRepo, tx txManager) *Service {
	return &Service{
		log:   log.With("service", "agenda"),
		items: items,
		tx:    tx,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
