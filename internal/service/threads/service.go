// Package threads implements thread intelligence: inferred titles, the
// activity dashboard, decision lookups, and thread resolution.
package threads

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

// threadRepo defines the thread-title store interface needed here.
type threadRepo interface {
	GetTitle(ctx context.Context, workspaceID, channelID, threadTS string) (*domain.ThreadTitle, error)
	MarkResolved(ctx context.Context, workspaceID, channelID, threadTS string) error
	Dashboard(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error)
}

// itemRepo defines the item store interface needed here.
type itemRepo interface {
	CloseThreadTasks(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error)
}

// decisionRepo defines the decision store interface needed here.
type decisionRepo interface {
	ListByThread(ctx context.Context, channelID, threadTS string) ([]domain.Decision, error)
	ListByProject(ctx context.Context, workspaceID, project string, limit int) ([]domain.Decision, error)
}

// txManager defines the transaction manager interface needed here.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements thread operations.
type Service struct {
	log       *slog.Logger
	threads   threadRepo
	items     itemRepo
	decisions decisionRepo
	tx        txManager
	now       func() time.Time
}

// NewService creates a new threads service instance.
func NewService(log *slog.Logger, threads threadRepo, items itemRepo, decisions decisionRepo, tx txManager) *Service {
	return &Service{
		log:       log.With("service", "threads"),
		threads:   threads,
		items:     items,
		decisions: decisions,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetThreadTitle returns the inferred title record for a thread.
func (s *Service) GetThreadTitle(ctx context.Context, workspaceID, channelID, threadTS string) (*domain.ThreadTitle, error) {
	return s.threads.GetTitle(ctx, workspaceID, channelID, threadTS)
}

// Dashboard returns the workspace's threads ordered by recency, each with
// its open-task and decision counts.
func (s *Service) Dashboard(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error) {
	rows, err := s.threads.Dashboard(ctx, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("thread dashboard: %w", err)
	}
	return rows, nil
}

// MarkResolved flags a thread as resolved. With closeTasks set, every
// active task extracted from the thread is completed in the same
// transaction; the count of closed tasks is returned.
func (s *Service) MarkResolved(ctx context.Context, workspaceID, channelID, threadTS string, closeTasks bool) (int64, error) {
	var closed int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.threads.MarkResolved(ctx, workspaceID, channelID, threadTS); err != nil {
			return err
		}
		if !closeTasks {
			return nil
		}
		var err error
		closed, err = s.items.CloseThreadTasks(ctx, channelID, threadTS, s.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("mark thread resolved: %w", err)
	}

	s.log.InfoContext(ctx, "thread resolved",
		slog.String("channel_id", channelID),
		slog.String("thread_ts", threadTS),
		slog.Int64("tasks_closed", closed),
	)
	return closed, nil
}

// ThreadDecisions lists the decisions extracted from one thread.
func (s *Service) ThreadDecisions(ctx context.Context, channelID, threadTS string) ([]domain.Decision, error) {
	return s.decisions.ListByThread(ctx, channelID, threadTS)
}

// ProjectDecisions lists a project's decisions, newest first.
func (s *Service) ProjectDecisions(ctx context.Context, workspaceID, project string, limit int) ([]domain.Decision, error) {
	return s.decisions.ListByProject(ctx, workspaceID, project, limit)
}
