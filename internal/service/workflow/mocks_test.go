package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	GetFunc       func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpsertFunc    func(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error)
	SearchFunc    func(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	MarkStaleFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	mu          sync.Mutex
	UpsertCalls []*domain.Item
	SearchCalls []domain.ItemFilter
}

func (m *itemRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetFunc == nil {
		panic("itemRepoMock.GetFunc: method is nil but itemRepo.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *itemRepoMock) Upsert(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error) {
	m.mu.Lock()
	m.UpsertCalls = append(m.UpsertCalls, item)
	m.mu.Unlock()
	if m.UpsertFunc == nil {
		panic("itemRepoMock.UpsertFunc: method is nil but itemRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, item)
}

func (m *itemRepoMock) Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, filter)
	m.mu.Unlock()
	if m.SearchFunc == nil {
		panic("itemRepoMock.SearchFunc: method is nil but itemRepo.Search was just called")
	}
	return m.SearchFunc(ctx, filter)
}

func (m *itemRepoMock) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.MarkStaleFunc == nil {
		panic("itemRepoMock.MarkStaleFunc: method is nil but itemRepo.MarkStale was just called")
	}
	return m.MarkStaleFunc(ctx, cutoff)
}

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetByUserIDFunc  func(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error)
	UpsertFunc       func(ctx context.Context, p *domain.UserProfile) error
	SetFocusModeFunc func(ctx context.Context, workspaceID, userID string, enabled bool, settings *domain.FocusSettings) error

	mu          sync.Mutex
	UpsertCalls []*domain.UserProfile
}

func (m *profileRepoMock) GetByUserID(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error) {
	if m.GetByUserIDFunc == nil {
		panic("profileRepoMock.GetByUserIDFunc: method is nil but profileRepo.GetByUserID was just called")
	}
	return m.GetByUserIDFunc(ctx, workspaceID, userID)
}

func (m *profileRepoMock) Upsert(ctx context.Context, p *domain.UserProfile) error {
	m.mu.Lock()
	m.UpsertCalls = append(m.UpsertCalls, p)
	m.mu.Unlock()
	if m.UpsertFunc == nil {
		panic("profileRepoMock.UpsertFunc: method is nil but profileRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, p)
}

func (m *profileRepoMock) SetFocusMode(ctx context.Context, workspaceID, userID string, enabled bool, settings *domain.FocusSettings) error {
	if m.SetFocusModeFunc == nil {
		panic("profileRepoMock.SetFocusModeFunc: method is nil but profileRepo.SetFocusMode was just called")
	}
	return m.SetFocusModeFunc(ctx, workspaceID, userID, enabled, settings)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly, with no transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
