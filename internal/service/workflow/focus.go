package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

// FocusModeTasks returns the user's top tasks for focus mode: active
// tasks assigned to the user where priority is above normal, or a
// normal-priority task is due within 24 hours. Everything else stays in
// the store but is suppressed from the view. A non-positive topN falls
// back to the configured default. An empty workspaceID disables
// workspace scoping.
func (s *Service) FocusModeTasks(ctx context.Context, workspaceID, userID string, topN int) ([]domain.Item, error) {
	if topN <= 0 {
		topN = s.focusTopN
	}

	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeTask},
		Statuses:  []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
		Assignees: []string{userID},
		OrderBy:   domain.OrderPriorityDesc,
		Limit:     focusScanLimit,
	}
	if workspaceID != "" {
		filter.WorkspaceID = &workspaceID
	}

	candidates, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("focus mode tasks: %w", err)
	}

	soon := s.now().Add(24 * time.Hour)
	tasks := candidates[:0:0]
	for _, it := range candidates {
		if it.Priority > 0 || (it.DueDate != nil && !it.DueDate.After(soon)) {
			tasks = append(tasks, it)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return dueBefore(tasks[i].DueDate, tasks[j].DueDate)
	})
	if len(tasks) > topN {
		tasks = tasks[:topN]
	}
	return tasks, nil
}

// dueBefore orders due dates ascending with nil last.
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

// MeetingModeItems collects the user's active items for a meeting,
// optionally narrowed to items shared with another participant or to a
// project, grouped by item type.
func (s *Service) MeetingModeItems(ctx context.Context, workspaceID, userID string, relatedUserID, project *string) (map[domain.ItemType][]domain.Item, error) {
	filter := domain.ItemFilter{
		Statuses:       []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
		RelevantToUser: &userID,
		Project:        project,
		OrderBy:        domain.OrderPriorityDesc,
		Limit:          focusScanLimit,
	}
	if workspaceID != "" {
		filter.WorkspaceID = &workspaceID
	}

	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("meeting mode items: %w", err)
	}

	byType := make(map[domain.ItemType][]domain.Item)
	for _, it := range items {
		if !userOnItem(&it, userID) {
			continue
		}
		if relatedUserID != nil && !userOnItem(&it, *relatedUserID) {
			continue
		}
		byType[it.Type] = append(byType[it.Type], it)
	}
	return byType, nil
}

// userOnItem reports whether the user is the item's assignee or requestor.
func userOnItem(it *domain.Item, userID string) bool {
	if it.AssignedToUserID != nil && *it.AssignedToUserID == userID {
		return true
	}
	return it.RequestorUserID != nil && *it.RequestorUserID == userID
}

// EnableFocusMode turns focus mode on for a user, creating the profile
// when none exists yet. A nil settings value falls back to defaults.
func (s *Service) EnableFocusMode(ctx context.Context, workspaceID, userID string, settings *domain.FocusSettings) error {
	if settings == nil {
		settings = &domain.FocusSettings{TopNTasks: s.focusTopN, SuppressLowPriority: true}
	}

	err := s.profiles.SetFocusMode(ctx, workspaceID, userID, true, settings)
	if errors.Is(err, domain.ErrNotFound) {
		err = s.profiles.Upsert(ctx, &domain.UserProfile{
			WorkspaceID:      workspaceID,
			UserID:           userID,
			FocusModeEnabled: true,
			FocusSettings:    settings,
		})
	}
	if err != nil {
		return fmt.Errorf("enable focus mode: %w", err)
	}

	s.log.InfoContext(ctx, "focus mode enabled", slog.String("user_id", userID))
	return nil
}

// DisableFocusMode turns focus mode off, keeping the stored settings.
func (s *Service) DisableFocusMode(ctx context.Context, workspaceID, userID string) error {
	if err := s.profiles.SetFocusMode(ctx, workspaceID, userID, false, nil); err != nil {
		return fmt.Errorf("disable focus mode: %w", err)
	}
	s.log.InfoContext(ctx, "focus mode disabled", slog.String("user_id", userID))
	return nil
}
