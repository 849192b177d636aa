// Package views implements saved views: named, reusable filter
// specifications executed through the item search, plus the predefined
// convenience views.
package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// viewRepo defines the saved-view store interface needed by the service.
type viewRepo interface {
	Create(ctx context.Context, v *domain.View) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.View, error)
	GetByName(ctx context.Context, workspaceID, name, userID string) (*domain.View, error)
	List(ctx context.Context, workspaceID, userID string) ([]domain.View, error)
	Update(ctx context.Context, v *domain.View) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// itemRepo defines the item search interface needed by the service.
type itemRepo interface {
	Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
}

// Service implements saved-view operations.
type Service struct {
	log   *slog.Logger
	views viewRepo
	items itemRepo
	now   func() time.Time
}

// NewService creates a new views service instance.
func NewService(log *slog.Logger, views viewRepo, items itemRepo) *Service {
	return &Service{
		log:   log.With("service", "views"),
		views: views,
		items: items,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
