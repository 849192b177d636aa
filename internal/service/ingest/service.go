// Package ingest turns incoming chat messages and threads into stored
// work items, decisions, and thread titles.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/internal/extract"
)

// itemRepo defines the item store interface needed by the ingest service.
type itemRepo interface {
	Upsert(ctx context.Context, item *domain.Item) (*domain.Item, []domain.ItemHistory, error)
	CloseThreadTasks(ctx context.Context, channelID, threadTS string, completedAt time.Time) (int64, error)
}

// decisionRepo defines the decision store interface needed by ingest.
type decisionRepo interface {
	Create(ctx context.Context, d *domain.Decision) error
	BackfillProject(ctx context.Context, channelID, threadTS, project string) (int64, error)
}

// threadRepo defines the thread-title store interface needed by ingest.
type threadRepo interface {
	UpsertTitle(ctx context.Context, t *domain.ThreadTitle) error
}

// txManager defines the transaction manager interface needed by ingest.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements message and thread ingestion.
type Service struct {
	log       *slog.Logger
	items     itemRepo
	decisions decisionRepo
	threads   threadRepo
	tx        txManager
	extractor *extract.Extractor
	now       func() time.Time
}

// NewService creates a new ingest service instance.
func NewService(
	log *slog.Logger,
	items itemRepo,
	decisions decisionRepo,
	threads threadRepo,
	tx txManager,
	extractor *extract.Extractor,
) *Service {
	return &Service{
		log:       log.With("service", "ingest"),
		items:     items,
		decisions: decisions,
		threads:   threads,
		tx:        tx,
		extractor: extractor,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
