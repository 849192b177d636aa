package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	UpsertFunc        func(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error)
	GetFunc           func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	SearchFunc        func(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	MarkCompletedFunc func(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Item, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	ListHistoryFunc   func(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.ItemHistory, error)

	mu          sync.Mutex
	UpsertCalls []*domain.Item
	DeleteCalls []uuid.UUID
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

func (m *itemRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetFunc == nil {
		panic("itemRepoMock.GetFunc: method is nil but itemRepo.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *itemRepoMock) Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if m.SearchFunc == nil {
		panic("itemRepoMock.SearchFunc: method is nil but itemRepo.Search was just called")
	}
	return m.SearchFunc(ctx, filter)
}

func (m *itemRepoMock) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Item, error) {
	if m.MarkCompletedFunc == nil {
		panic("itemRepoMock.MarkCompletedFunc: method is nil but itemRepo.MarkCompleted was just called")
	}
	return m.MarkCompletedFunc(ctx, id, completedAt)
}

func (m *itemRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()
	if m.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *itemRepoMock) ListHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.ItemHistory, error) {
	if m.ListHistoryFunc == nil {
		panic("itemRepoMock.ListHistoryFunc: method is nil but itemRepo.ListHistory was just called")
	}
	return m.ListHistoryFunc(ctx, itemID, limit)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly, with no transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
