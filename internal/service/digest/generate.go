package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkossowski/agendum/internal/domain"
)

// Digest kinds.
const (
	KindMorning = "morning"
	KindEOD     = "end_of_day"
	KindCatchUp = "while_you_were_away"
)

// sectionQuery pairs a section name with the filter that fills it.
type sectionQuery struct {
	name   string
	filter domain.ItemFilter
}

// sectionTypeOrder fixes the order of per-type sections in the catch-up
// digest.
var sectionTypeOrder = []domain.ItemType{
	domain.ItemTypeTask,
	domain.ItemTypeDecision,
	domain.ItemTypeObligation,
	domain.ItemTypeQuestion,
	domain.ItemTypeActionItem,
	domain.ItemTypeNote,
	domain.ItemTypeAnnouncement,
}

// Morning builds the start-of-day digest for a user: tasks due today,
// tasks that arrived in the last 24 hours, and important decisions made
// in the last 24 hours.
func (s *Service) Morning(ctx context.Context, workspaceID, userID string) (Digest, error) {
	now := s.now()
	dayStart, dayEnd := dayBounds(now)
	yesterdayStart := dayStart.AddDate(0, 0, -1)
	channels := s.watchedChannels(ctx, workspaceID)
	relevant := userID

	queries := []sectionQuery{
		{
			name: "Due today",
			filter: domain.ItemFilter{
				WorkspaceID: &workspaceID,
				ChannelIDs:  channels,
				Types:       []domain.ItemType{domain.ItemTypeTask},
				Statuses:    []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
				Assignees:   []string{userID},
				DueFrom:     &dayStart,
				DueBefore:   &dayEnd,
				OrderBy:     domain.OrderDueDateAsc,
				Limit:       s.itemLimit,
			},
		},
		{
			name: "New tasks (24h)",
			filter: domain.ItemFilter{
				WorkspaceID:    &workspaceID,
				ChannelIDs:     channels,
				Types:          []domain.ItemType{domain.ItemTypeTask},
				RelevantToUser: &relevant,
				DateFrom:       &yesterdayStart,
				OrderBy:        domain.OrderCreatedAtDesc,
				Limit:          s.itemLimit,
			},
		},
		{
			name: "Important decisions (24h)",
			filter: func() domain.ItemFilter {
				high := domain.PriorityHigh
				return domain.ItemFilter{
					WorkspaceID:    &workspaceID,
					ChannelIDs:     channels,
					Types:          []domain.ItemType{domain.ItemTypeDecision},
					RelevantToUser: &relevant,
					DateFrom:       &yesterdayStart,
					MinPriority:    &high,
					OrderBy:        domain.OrderCreatedAtDesc,
					Limit:          s.itemLimit,
				}
			}(),
		},
	}

	return s.assemble(ctx, KindMorning, workspaceID, userID, queries)
}

// EndOfDay builds the wrap-up digest: what got done today, what is
// still open, and what is overdue.
func (s *Service) EndOfDay(ctx context.Context, workspaceID, userID string) (Digest, error) {
	now := s.now()
	dayStart, _ := dayBounds(now)
	channels := s.watchedChannels(ctx, workspaceID)

	queries := []sectionQuery{
		{
			name: "Completed today",
			filter: domain.ItemFilter{
				WorkspaceID:    &workspaceID,
				ChannelIDs:     channels,
				Types:          []domain.ItemType{domain.ItemTypeTask},
				Statuses:       []domain.ItemStatus{domain.StatusCompleted},
				Assignees:      []string{userID},
				CompletedSince: &dayStart,
				OrderBy:        domain.OrderUpdatedAtDesc,
				Limit:          s.itemLimit,
			},
		},
		{
			name: "Still open",
			filter: domain.ItemFilter{
				WorkspaceID: &workspaceID,
				ChannelIDs:  channels,
				Types:       []domain.ItemType{domain.ItemTypeTask},
				Statuses:    []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
				Assignees:   []string{userID},
				OrderBy:     domain.OrderPriorityDesc,
				Limit:       s.itemLimit,
			},
		},
		{
			name: "Overdue",
			filter: domain.ItemFilter{
				WorkspaceID: &workspaceID,
				ChannelIDs:  channels,
				Types:       []domain.ItemType{domain.ItemTypeTask},
				Statuses:    []domain.ItemStatus{domain.StatusOpen, domain.StatusInProgress},
				Assignees:   []string{userID},
				DueBefore:   &now,
				OrderBy:     domain.OrderDueDateAsc,
				Limit:       s.itemLimit,
			},
		},
	}

	return s.assemble(ctx, KindEOD, workspaceID, userID, queries)
}

// CatchUp builds the "while you were away" digest since the given
// instant: everything created in the window where the user is assignee,
// requestor, or creator, grouped by type, newest first, plus the
// decisions recorded in the window.
func (s *Service) CatchUp(ctx context.Context, workspaceID, userID string, since time.Time) (Digest, error) {
	channels := s.watchedChannels(ctx, workspaceID)
	relevant := userID

	d := Digest{
		Kind:        KindCatchUp,
		WorkspaceID: workspaceID,
		UserID:      userID,
		GeneratedAt: s.now(),
	}

	var items []domain.Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.items.Search(gctx, domain.ItemFilter{
			WorkspaceID:    &workspaceID,
			ChannelIDs:     channels,
			RelevantToUser: &relevant,
			DateFrom:       &since,
			OrderBy:        domain.OrderCreatedAtDesc,
			Limit:          s.itemLimit,
		})
		if err != nil {
			return fmt.Errorf("items since %s: %w", since.Format(time.RFC3339), err)
		}
		return nil
	})
	g.Go(func() error {
		decisions, err := s.decisions.ListSince(gctx, workspaceID, since)
		if err != nil {
			return fmt.Errorf("list decisions: %w", err)
		}
		d.Decisions = decisions
		return nil
	})
	if err := g.Wait(); err != nil {
		return Digest{}, err
	}

	d.Sections = groupByType(items)

	s.log.InfoContext(ctx, "digest assembled",
		slog.String("kind", KindCatchUp),
		slog.String("workspace_id", workspaceID),
		slog.String("user_id", userID),
		slog.Int("sections", len(d.Sections)),
	)
	return d, nil
}

// groupByType splits items into one section per item type, preserving
// the query order within each and skipping types with no items.
func groupByType(items []domain.Item) []Section {
	byType := make(map[domain.ItemType][]domain.Item)
	for _, it := range items {
		byType[it.Type] = append(byType[it.Type], it)
	}

	var sections []Section
	for _, t := range sectionTypeOrder {
		if group, ok := byType[t]; ok {
			sections = append(sections, Section{Name: t.String(), Items: group})
		}
	}
	return sections
}

// assemble fans the section queries out concurrently and stitches the
// digest together in query order.
func (s *Service) assemble(ctx context.Context, kind, workspaceID, userID string, queries []sectionQuery) (Digest, error) {
	d := Digest{
		Kind:        kind,
		WorkspaceID: workspaceID,
		UserID:      userID,
		GeneratedAt: s.now(),
		Sections:    make([]Section, len(queries)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			items, err := s.items.Search(gctx, q.filter)
			if err != nil {
				return fmt.Errorf("section %q: %w", q.name, err)
			}
			d.Sections[i] = Section{Name: q.name, Items: items}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Digest{}, err
	}

	s.log.InfoContext(ctx, "digest assembled",
		slog.String("kind", kind),
		slog.String("workspace_id", workspaceID),
		slog.String("user_id", userID),
		slog.Int("sections", len(d.Sections)),
	)
	return d, nil
}
