package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// CreateViewInput carries the fields for a new saved view. A nil UserID
// makes the view shared across the workspace.
type CreateViewInput struct {
	WorkspaceID  string
	UserID       *string
	Name         string
	Description  *string
	IsPredefined bool
	Filter       domain.ItemFilter
}

// CreateView stores a new saved view.
func (s *Service) CreateView(ctx context.Context, in CreateViewInput) (*domain.View, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "view name is required")
	}

	v := &domain.View{
		ID:           uuid.New(),
		WorkspaceID:  in.WorkspaceID,
		UserID:       in.UserID,
		Name:         in.Name,
		Description:  in.Description,
		IsPredefined: in.IsPredefined,
		Filter:       in.Filter,
	}
	if err := s.views.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}

	s.log.InfoContext(ctx, "view created",
		slog.String("view_id", v.ID.String()),
		slog.String("name", v.Name),
	)
	return v, nil
}

// GetView returns a saved view by id.
func (s *Service) GetView(ctx context.Context, id uuid.UUID) (*domain.View, error) {
	return s.views.GetByID(ctx, id)
}

// ListViews returns the user's own views plus the workspace's shared
// views, predefined first.
func (s *Service) ListViews(ctx context.Context, workspaceID, userID string) ([]domain.View, error) {
	return s.views.List(ctx, workspaceID, userID)
}

// UpdateViewInput carries partial updates for a saved view; nil fields
// keep their stored values.
type UpdateViewInput struct {
	Name        *string
	Description *string
	Filter      *domain.ItemFilter
}

// UpdateView applies the given changes to a saved view.
func (s *Service) UpdateView(ctx context.Context, id uuid.UUID, in UpdateViewInput) (*domain.View, error) {
	v, err := s.views.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "view name is required")
		}
		v.Name = *in.Name
	}
	if in.Description != nil {
		v.Description = in.Description
	}
	if in.Filter != nil {
		v.Filter = *in.Filter
	}

	if err := s.views.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}

	s.log.InfoContext(ctx, "view updated", slog.String("view_id", id.String()))
	return v, nil
}

// DeleteView removes a saved view.
func (s *Service) DeleteView(ctx context.Context, id uuid.UUID) error {
	if err := s.views.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	s.log.InfoContext(ctx, "view deleted", slog.String("view_id", id.String()))
	return nil
}

// Execute runs a saved view's filter and returns the matching items.
// A positive limit overrides the limit stored in the view.
func (s *Service) Execute(ctx context.Context, id uuid.UUID, limit int) ([]domain.Item, error) {
	v, err := s.views.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("execute view: %w", err)
	}
	return s.run(ctx, v, limit)
}

// ExecuteByName resolves a view by name, personal views shadowing shared
// ones, and runs it.
func (s *Service) ExecuteByName(ctx context.Context, workspaceID, name, userID string, limit int) ([]domain.Item, error) {
	v, err := s.views.GetByName(ctx, workspaceID, name, userID)
	if err != nil {
		return nil, fmt.Errorf("execute view %q: %w", name, err)
	}
	return s.run(ctx, v, limit)
}

func (s *Service) run(ctx context.Context, v *domain.View, limit int) ([]domain.Item, error) {
	filter := v.Filter
	if limit > 0 {
		filter.Limit = limit
	}
	items, err := s.items.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("execute view %q: %w", v.Name, err)
	}
	return items, nil
}
