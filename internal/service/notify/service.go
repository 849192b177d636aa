// Package notify implements the notification policy engine: a pure
// decision function over an item, the recipient's preferences, and the
// clock. It returns a routing decision; delivery belongs to the caller.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkossowski/agendum/internal/domain"
)

// profileRepo defines the profile store interface needed by notify.
type profileRepo interface {
	GetByUserID(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error)
}

// Service implements notification routing decisions.
type Service struct {
	log      *slog.Logger
	profiles profileRepo
	now      func() time.Time
}

// NewService creates a new notify service instance.
func NewService(log *slog.Logger, profiles profileRepo) *Service {
	return &Service{
		log:      log.With("service", "notify"),
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}
