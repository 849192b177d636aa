package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// Snooze pushes a task's due date to now plus the given number of hours.
// Items that are not tasks report ErrNotFound, same as a missing id.
func (s *Service) Snooze(ctx context.Context, taskID uuid.UUID, hours int) (*domain.Item, error) {
	item, err := s.items.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("snooze: %w", err)
	}
	if item.Type != domain.ItemTypeTask {
		return nil, fmt.Errorf("snooze: item %s is not a task: %w", taskID, domain.ErrNotFound)
	}

	due := s.now().Add(time.Duration(hours) * time.Hour)
	item.DueDate = &due

	updated, err := s.save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("snooze: %w", err)
	}

	s.log.InfoContext(ctx, "task snoozed",
		slog.String("item_id", taskID.String()),
		slog.Int("hours", hours),
		slog.Time("due_date", due),
	)
	return updated, nil
}

// Reassign overwrites a task's assignee fields. A nil name clears the
// stored assignee name.
func (s *Service) Reassign(ctx context.Context, taskID uuid.UUID, assigneeID string, assigneeName *string) (*domain.Item, error) {
	item, err := s.items.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reassign: %w", err)
	}
	if item.Type != domain.ItemTypeTask {
		return nil, fmt.Errorf("reassign: item %s is not a task: %w", taskID, domain.ErrNotFound)
	}

	item.AssignedToUserID = &assigneeID
	item.AssignedToUserName = assigneeName

	updated, err := s.save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("reassign: %w", err)
	}

	s.log.InfoContext(ctx, "task reassigned",
		slog.String("item_id", taskID.String()),
		slog.String("assignee", assigneeID),
	)
	return updated, nil
}

// ChangePriority sets an item's priority level (0 normal, 1 high,
// 2 urgent).
func (s *Service) ChangePriority(ctx context.Context, taskID uuid.UUID, priority int) (*domain.Item, error) {
	if !domain.ValidPriority(priority) {
		return nil, domain.NewValidationError("priority", "priority must be 0, 1, or 2")
	}

	item, err := s.items.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("change priority: %w", err)
	}
	item.Priority = priority

	updated, err := s.save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("change priority: %w", err)
	}

	s.log.InfoContext(ctx, "priority changed",
		slog.String("item_id", taskID.String()),
		slog.Int("priority", priority),
	)
	return updated, nil
}

// ConvertToTicket marks an item as tracked in an external ticket system
// by appending a "ticket:<system>[:<id>]" label. Converting twice with
// the same reference is a no-op.
func (s *Service) ConvertToTicket(ctx context.Context, itemID uuid.UUID, system string, ticketID *string) (*domain.Item, error) {
	if system == "" {
		system = "external"
	}
	label := "ticket:" + system
	if ticketID != nil && *ticketID != "" {
		label += ":" + *ticketID
	}

	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("convert to ticket: %w", err)
	}

	labels := item.LabelList()
	for _, l := range labels {
		if l == label {
			return item, nil
		}
	}
	item.SetLabels(append(labels, label))

	updated, err := s.save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("convert to ticket: %w", err)
	}

	s.log.InfoContext(ctx, "item converted to ticket",
		slog.String("item_id", itemID.String()),
		slog.String("label", label),
	)
	return updated, nil
}

// save upserts the mutated item inside a transaction so the row update
// and its history records land together.
func (s *Service) save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	var updated *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, _, err = s.items.Upsert(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
