package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkossowski/agendum/internal/domain"
)

// MarkStaleItems bulk-transitions active tasks untouched for the given
// number of days to stale and reports how many changed. Non-positive
// daysInactive falls back to the configured default. A re-run with no
// intervening updates finds nothing, so the sweep is safe to retry.
func (s *Service) MarkStaleItems(ctx context.Context, daysInactive int) (int64, error) {
	if daysInactive <= 0 {
		daysInactive = s.staleAfterDays
	}
	cutoff := s.now().AddDate(0, 0, -daysInactive)

	n, err := s.items.MarkStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark stale: %w", err)
	}

	s.log.InfoContext(ctx, "stale sweep finished",
		slog.Int("days_inactive", daysInactive),
		slog.Int64("marked", n),
	)
	return n, nil
}

// OverdueTasks lists active tasks whose due date has passed, soonest
// first. Empty workspaceID or userID disables the respective scoping.
func (s *Service) OverdueTasks(ctx context.Context, workspaceID, userID string) ([]domain.Item, error) {
	now := s.now()
	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeTask},
		Statuses:  []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
		DueBefore: &now,
		OrderBy:   domain.OrderDueDateAsc,
	}
	if workspaceID != "" {
		filter.WorkspaceID = &workspaceID
	}
	if userID != "" {
		filter.Assignees = []string{userID}
	}

	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("overdue tasks: %w", err)
	}
	return items, nil
}

// TasksWithoutOwner lists active tasks that nobody is assigned to.
func (s *Service) TasksWithoutOwner(ctx context.Context, workspaceID string) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Types:      []domain.ItemType{domain.ItemTypeTask},
		Statuses:   []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
		NoAssignee: true,
		OrderBy:    domain.OrderCreatedAtDesc,
	}
	if workspaceID != "" {
		filter.WorkspaceID = &workspaceID
	}

	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("tasks without owner: %w", err)
	}
	return items, nil
}

// TasksWithoutDueDate lists active tasks with no deadline.
func (s *Service) TasksWithoutDueDate(ctx context.Context, workspaceID, userID string) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeTask},
		Statuses:  []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
		NoDueDate: true,
		OrderBy:   domain.OrderCreatedAtDesc,
	}
	if workspaceID != "" {
		filter.WorkspaceID = &workspaceID
	}
	if userID != "" {
		filter.Assignees = []string{userID}
	}

	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("tasks without due date: %w", err)
	}
	return items, nil
}
