package views

import (
	"context"

	"github.com/mkossowski/agendum/internal/domain"
)

// Predefined views: fixed filter shapes that ship with the product
// rather than being stored per user.

var activeStatuses = []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress}

// MyTasks returns tasks assigned to the user, soonest deadline first.
// An empty workspaceID disables workspace scoping.
func (s *Service) MyTasks(ctx context.Context, workspaceID, userID string, includeCompleted bool) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeTask},
		Assignees: []string{userID},
		OrderBy:   domain.OrderDueDateAsc,
	}
	if !includeCompleted {
		filter.Statuses = activeStatuses
	}
	scopeWorkspace(&filter, workspaceID)
	return s.items.Search(ctx, filter)
}

// WhatIOwe returns active tasks the user owes to a specific requestor.
func (s *Service) WhatIOwe(ctx context.Context, workspaceID, userID, requestorID string) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeTask},
		Statuses:  activeStatuses,
		Assignees: []string{userID},
		Requestor: &requestorID,
		OrderBy:   domain.OrderDueDateAsc,
	}
	scopeWorkspace(&filter, workspaceID)
	return s.items.Search(ctx, filter)
}

// DecisionsForProject returns decision items recorded for a project,
// newest first.
func (s *Service) DecisionsForProject(ctx context.Context, workspaceID, project string) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Types:   []domain.ItemType{domain.ItemTypeDecision},
		Project: &project,
		OrderBy: domain.OrderCreatedAtDesc,
	}
	scopeWorkspace(&filter, workspaceID)
	return s.items.Search(ctx, filter)
}

// OpenQuestionsIAsked returns questions the user raised in the last
// given number of days that are still open.
func (s *Service) OpenQuestionsIAsked(ctx context.Context, workspaceID, userID string, days int) ([]domain.Item, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := s.now().AddDate(0, 0, -days)
	filter := domain.ItemFilter{
		Types:     []domain.ItemType{domain.ItemTypeQuestion},
		Statuses:  []domain.ItemStatus{domain.StatusOpen},
		CreatedBy: &userID,
		DateFrom:  &cutoff,
		OrderBy:   domain.OrderCreatedAtDesc,
	}
	scopeWorkspace(&filter, workspaceID)
	return s.items.Search(ctx, filter)
}

func scopeWorkspace(f *domain.ItemFilter, workspaceID string) {
	if workspaceID != "" {
		f.WorkspaceID = &workspaceID
	}
}
