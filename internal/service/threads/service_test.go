package threads

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

var _ threadRepo = &threadRepoMock{}

type threadRepoMock struct {
	GetTitleFunc     func(ctx context.Context, workspaceID, channelID, threadTS string) (*domain.ThreadTitle, error)
	MarkResolvedFunc func(ctx context.Context, workspaceID, channelID, threadTS string) error
	DashboardFunc    func(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error)
}

func (m *threadRepoMock) GetTitle(ctx context.Context, workspaceID, channelID, threadTS string) (*domain.ThreadTitle, error) {
	if m.GetTitleFunc == nil {
		panic("threadRepoMock.GetTitleFunc: method is nil but threadRepo.GetTitle was just called")
	}
	return m.GetTitleFunc(ctx, workspaceID, channelID, threadTS)
}

func (m *threadRepoMock) MarkResolved(ctx context.Context, workspaceID, channelID, threadTS string) error {
	if m.MarkResolvedFunc == nil {
		panic("threadRepoMock.MarkResolvedFunc: method is nil but threadRepo.MarkResolved was just called")
	}
	return m.MarkResolvedFunc(ctx, workspaceID, channelID, threadTS)
}

func (m *threadRepoMock) Dashboard(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error) {
	if m.DashboardFunc == nil {
		panic("threadRepoMock.DashboardFunc: method is nil but threadRepo.Dashboard was just called")
	}
	return m.DashboardFunc(ctx, workspaceID, limit)
}

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	CloseThreadTasksFunc func(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error)
	CloseCalls           int
}

func (m *itemRepoMock) CloseThreadTasks(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error) {
	m.CloseCalls++
	if m.CloseThreadTasksFunc == nil {
		panic("itemRepoMock.CloseThreadTasksFunc: method is nil but itemRepo.CloseThreadTasks was just called")
	}
	return m.CloseThreadTasksFunc(ctx, channelID, threadTS, completedAt)
}

var _ decisionRepo = &decisionRepoMock{}

type decisionRepoMock struct {
	ListByThreadFunc  func(ctx context.Context, channelID, threadTS string) ([]domain.Decision, error)
	ListByProjectFunc func(ctx context.Context, workspaceID, project string, limit int) ([]domain.Decision, error)
}

func (m *decisionRepoMock) ListByThread(ctx context.Context, channelID, threadTS string) ([]domain.Decision, error) {
	if m.ListByThreadFunc == nil {
		panic("decisionRepoMock.ListByThreadFunc: method is nil but decisionRepo.ListByThread was just called")
	}
	return m.ListByThreadFunc(ctx, channelID, threadTS)
}

func (m *decisionRepoMock) ListByProject(ctx context.Context, workspaceID, project string, limit int) ([]domain.Decision, error) {
	if m.ListByProjectFunc == nil {
		panic("decisionRepoMock.ListByProjectFunc: method is nil but decisionRepo.ListByProject was just called")
	}
	return m.ListByProjectFunc(ctx, workspaceID, project, limit)
}

// txManagerMock runs the callback directly, with no transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(threads *threadRepoMock, items *itemRepoMock, decisions *decisionRepoMock) *Service {
	svc := NewService(slog.Default(), threads, items, decisions, &txManagerMock{})
	svc.now = func() time.Time { return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_MarkResolved_ClosesTasks(t *testing.T) {
	t.Parallel()

	threads := &threadRepoMock{
		MarkResolvedFunc: func(ctx context.Context, workspaceID, channelID, threadTS string) error {
			return nil
		},
	}
	items := &itemRepoMock{
		CloseThreadTasksFunc: func(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error) {
			return 3, nil
		},
	}
	svc := newTestService(threads, items, &decisionRepoMock{})

	closed, err := svc.MarkResolved(context.Background(), "W1", "C1", "1718187000.000100", true)
	if err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	if closed != 3 {
		t.Errorf("closed = %d, want 3", closed)
	}
}

func TestService_MarkResolved_KeepsTasksOpen(t *testing.T) {
	t.Parallel()

	threads := &threadRepoMock{
		MarkResolvedFunc: func(ctx context.Context, workspaceID, channelID, threadTS string) error {
			return nil
		},
	}
	items := &itemRepoMock{}
	svc := newTestService(threads, items, &decisionRepoMock{})

	closed, err := svc.MarkResolved(context.Background(), "W1", "C1", "1718187000.000100", false)
	if err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	if closed != 0 {
		t.Errorf("closed = %d, want 0", closed)
	}
	if items.CloseCalls != 0 {
		t.Error("tasks must stay open when closeTasks is false")
	}
}

func TestService_MarkResolved_UnknownThread(t *testing.T) {
	t.Parallel()

	threads := &threadRepoMock{
		MarkResolvedFunc: func(ctx context.Context, workspaceID, channelID, threadTS string) error {
			return domain.ErrNotFound
		},
	}
	items := &itemRepoMock{}
	svc := newTestService(threads, items, &decisionRepoMock{})

	_, err := svc.MarkResolved(context.Background(), "W1", "C1", "missing", true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("MarkResolved = %v, want ErrNotFound", err)
	}
	if items.CloseCalls != 0 {
		t.Error("resolution failure must not close tasks")
	}
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	threads := &threadRepoMock{
		DashboardFunc: func(ctx context.Context, workspaceID string, limit int) ([]domain.ThreadSummary, error) {
			return []domain.ThreadSummary{
				{ThreadTS: "1.0", Title: "deploy pipeline broken", OpenTaskCount: 2, DecisionCount: 1},
			}, nil
		},
	}
	svc := newTestService(threads, &itemRepoMock{}, &decisionRepoMock{})

	rows, err := svc.Dashboard(context.Background(), "W1", 50)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(rows) != 1 || rows[0].OpenTaskCount != 2 {
		t.Errorf("rows = %+v", rows)
	}
}
