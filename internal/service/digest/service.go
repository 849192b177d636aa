// Package digest assembles the morning, end-of-day, and catch-up
// summaries. Each digest is a set of independent filter queries fanned
// out concurrently and stitched into sections.
package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

// itemRepo defines the item store interface needed by digests.
type itemRepo interface {
	Search(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
}

// decisionRepo defines the decision store interface needed by digests.
type decisionRepo interface {
	ListSince(ctx context.Context, workspaceID string, since time.Time) ([]domain.Decision, error)
}

// workspaceRepo defines the workspace-config interface needed by digests.
type workspaceRepo interface {
	Get(ctx context.Context, workspaceID string) (*domain.WorkspaceConfig, error)
}

// Service implements digest generation.
type Service struct {
	log        *slog.Logger
	items      itemRepo
	decisions  decisionRepo
	workspaces workspaceRepo
	itemLimit  int
	now        func() time.Time
}

// NewService creates a new digest service instance. itemLimit caps each
// section independently; non-positive values fall back to the search
// default.
func NewService(log *slog.Logger, items itemRepo, decisions decisionRepo, workspaces workspaceRepo, itemLimit int) *Service {
	if itemLimit <= 0 {
		itemLimit = domain.DefaultSearchLimit
	}
	return &Service{
		log:        log.With("service", "digest"),
		items:      items,
		decisions:  decisions,
		workspaces: workspaces,
		itemLimit:  itemLimit,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Section is one titled group of items within a digest.
type Section struct {
	Name  string
	Items []domain.Item
}

// Digest is an assembled summary ready for rendering by a delivery layer.
type Digest struct {
	Kind        string
	WorkspaceID string
	UserID      string
	GeneratedAt time.Time
	Sections    []Section
	Decisions   []domain.Decision
}

// IsEmpty reports whether the digest carries nothing worth sending.
func (d Digest) IsEmpty() bool {
	for _, s := range d.Sections {
		if len(s.Items) > 0 {
			return false
		}
	}
	return len(d.Decisions) == 0
}

// dayBounds returns midnight-to-midnight around now, in now's location.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// watchedChannels resolves the workspace's channel scope; an absent
// config means no scoping.
func (s *Service) watchedChannels(ctx context.Context, workspaceID string) []string {
	cfg, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil
	}
	return cfg.WatchedChannels
}
