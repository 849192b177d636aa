package agenda

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// GetItem returns one item by id.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return s.items.Get(ctx, id)
}

// SearchItems runs the filter evaluator over the store.
func (s *Service) SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// ItemHistory returns the audit records for an item, newest first.
func (s *Service) ItemHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.ItemHistory, error) {
	// the item must exist; an empty history on a live item is valid
	if _, err := s.items.Get(ctx, itemID); err != nil {
		return nil, err
	}
	return s.items.ListHistory(ctx, itemID, limit)
}
