package agenda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// CompleteItem transitions the item to completed, stamping the completion
// time and writing the status history. Completing an already-completed
// item is a no-op.
func (s *Service) CompleteItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var item *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.items.MarkCompleted(ctx, id, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("complete item: %w", err)
	}

	s.log.InfoContext(ctx, "item completed", slog.String("item_id", id.String()))
	return item, nil
}

// DeleteItem removes the item and, via cascade, its history.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.InfoContext(ctx, "item deleted", slog.String("item_id", id.String()))
	return nil
}
