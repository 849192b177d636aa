package agenda

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// UpsertInput carries the caller-supplied fields of a work item. A zero
// ID creates a new item; a known ID updates the existing one field by
// field, the most recent write winning.
type UpsertInput struct {
	ID          uuid.UUID
	Type        string
	Status      string
	Title       string
	Description *string

	WorkspaceID      *string
	SourceChannelID  *string
	SourceThreadTS   *string
	SourceMessageTS  *string
	SourceURL        *string
	AssignedToUserID *string
	RequestorUserID  *string
	CreatedByUserID  *string

	Project  *string
	Topic    *string
	Tags     []string
	Labels   []string
	DueDate  *time.Time
	Priority int

	CompletedAt *time.Time
}

// UpsertItem writes the item and its audit trail in one transaction.
func (s *Service) UpsertItem(ctx context.Context, input UpsertInput) (*domain.Item, error) {
	itemType, err := domain.ParseItemType(input.Type)
	if err != nil {
		return nil, err
	}
	status := domain.StatusOpen
	if input.Status != "" {
		if status, err = domain.ParseItemStatus(input.Status); err != nil {
			return nil, err
		}
	}

	now := s.now()
	item := &domain.Item{
		ID:               input.ID,
		Type:             itemType,
		Status:           status,
		Title:            input.Title,
		Description:      input.Description,
		WorkspaceID:      input.WorkspaceID,
		SourceChannelID:  input.SourceChannelID,
		SourceThreadTS:   input.SourceThreadTS,
		SourceMessageTS:  input.SourceMessageTS,
		SourceURL:        input.SourceURL,
		AssignedToUserID: input.AssignedToUserID,
		RequestorUserID:  input.RequestorUserID,
		CreatedByUserID:  input.CreatedByUserID,
		Project:          input.Project,
		Topic:            input.Topic,
		DueDate:          input.DueDate,
		Priority:         input.Priority,
		CreatedAt:        now,
		UpdatedAt:        now,
		CompletedAt:      input.CompletedAt,
	}
	item.SetTags(input.Tags)
	item.SetLabels(input.Labels)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Status == domain.StatusCompleted && item.CompletedAt == nil {
		item.CompletedAt = &now
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return s.upsert(ctx, item)
}

// upsert runs the write and its history records atomically.
func (s *Service) upsert(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	var (
		persisted *domain.Item
		history   []domain.ItemHistory
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		persisted, history, err = s.items.Upsert(ctx, item)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert item: %w", err)
	}

	s.log.InfoContext(ctx, "item upserted",
		slog.String("item_id", persisted.ID.String()),
		slog.String("type", string(persisted.Type)),
		slog.Int("fields_changed", len(history)),
	)
	return persisted, nil
}
