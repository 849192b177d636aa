package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

type profileRepoMock struct {
	profile *domain.UserProfile
	err     error
}

func (m *profileRepoMock) GetByUserID(ctx context.Context, workspaceID, userID string) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

// daytime is well outside the default 22:00-08:00 quiet window.
var daytime = time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)

func newTestService(mock *profileRepoMock, now time.Time) *Service {
	return &Service{
		log:      slog.Default(),
		profiles: mock,
		now:      func() time.Time { return now },
	}
}

func taskFor(userID string, priority int) *domain.Item {
	assignee := userID
	return &domain.Item{
		ID:               uuid.New(),
		Type:             domain.ItemTypeTask,
		Status:           domain.StatusOpen,
		Title:            "fix the login bug",
		AssignedToUserID: &assignee,
		Priority:         priority,
	}
}

func TestService_Decide(t *testing.T) {
	t.Parallel()

	prefsWith := func(mutate func(*domain.NotificationPrefs)) *domain.UserProfile {
		prefs := domain.DefaultNotificationPrefs()
		if mutate != nil {
			mutate(&prefs)
		}
		return &domain.UserProfile{UserID: "U1", NotificationPrefs: &prefs}
	}

	tests := []struct {
		name       string
		item       *domain.Item
		profile    *domain.UserProfile
		repoErr    error
		now        time.Time
		wantAction domain.NotifyAction
		wantReason string
	}{
		{
			name:       "direct high-priority task is instant",
			item:       taskFor("U1", domain.PriorityHigh),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyInstant,
			wantReason: domain.RuleDirectTasks,
		},
		{
			name:       "direct normal-priority task batches",
			item:       taskFor("U1", domain.PriorityNormal),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyBatch,
			wantReason: ReasonDefault,
		},
		{
			name:       "missing profile uses defaults",
			item:       taskFor("U1", domain.PriorityHigh),
			repoErr:    domain.ErrNotFound,
			now:        daytime,
			wantAction: domain.NotifyInstant,
			wantReason: domain.RuleDirectTasks,
		},
		{
			name: "high-priority task for someone else batches",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityHigh)
				return i
			}(),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyBatch,
			wantReason: ReasonDefault,
		},
		{
			name:       "quiet hours downgrade even urgent work",
			item:       taskFor("U1", domain.PriorityUrgent),
			profile:    prefsWith(nil),
			now:        time.Date(2024, 6, 12, 23, 30, 0, 0, time.UTC),
			wantAction: domain.NotifyBatch,
			wantReason: ReasonQuietHours,
		},
		{
			name: "overnight quiet hours wrap past midnight",
			item: taskFor("U1", domain.PriorityUrgent),
			profile: prefsWith(func(p *domain.NotificationPrefs) {
				p.QuietHours = domain.QuietHours{Start: "22:00", End: "08:00"}
			}),
			now:        time.Date(2024, 6, 13, 6, 0, 0, 0, time.UTC),
			wantAction: domain.NotifyBatch,
			wantReason: ReasonQuietHours,
		},
		{
			name: "urgent customer project matches customer-issue rule",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityUrgent)
				project := "customer-portal"
				i.Project = &project
				return i
			}(),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyInstant,
			wantReason: domain.RuleUrgentCustomerIssues,
		},
		{
			name: "urgent support channel matches customer-issue rule",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityUrgent)
				channel := "Support-EU"
				i.SourceChannelName = &channel
				return i
			}(),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyInstant,
			wantReason: domain.RuleUrgentCustomerIssues,
		},
		{
			name: "urgent item outside customer context batches",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityUrgent)
				project := "internal-tooling"
				i.Project = &project
				return i
			}(),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyBatch,
			wantReason: ReasonDefault,
		},
		{
			name: "customer project below urgent batches",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityHigh)
				project := "customer-portal"
				i.Project = &project
				return i
			}(),
			profile:    prefsWith(nil),
			now:        daytime,
			wantAction: domain.NotifyBatch,
			wantReason: ReasonDefault,
		},
		{
			name: "high priority rule when enabled",
			item: func() *domain.Item {
				i := taskFor("U2", domain.PriorityHigh)
				return i
			}(),
			profile: prefsWith(func(p *domain.NotificationPrefs) {
				p.InstantFor = []string{domain.RuleHighPriority}
			}),
			now:        daytime,
			wantAction: domain.NotifyInstant,
			wantReason: domain.RuleHighPriority,
		},
		{
			name: "unknown stored rule is skipped",
			item: taskFor("U2", domain.PriorityNormal),
			profile: prefsWith(func(p *domain.NotificationPrefs) {
				p.InstantFor = []string{"carrier_pigeon"}
			}),
			now:        daytime,
			wantAction: domain.NotifyBatch,
			wantReason: ReasonDefault,
		},
		{
			name: "batching disabled falls through to silent",
			item: taskFor("U1", domain.PriorityNormal),
			profile: prefsWith(func(p *domain.NotificationPrefs) {
				p.BatchEverythingElse = false
			}),
			now:        daytime,
			wantAction: domain.NotifySilent,
			wantReason: ReasonDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(&profileRepoMock{profile: tt.profile, err: tt.repoErr}, tt.now)

			got, err := svc.Decide(context.Background(), tt.item, "W1", "U1")
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if got.Action != tt.wantAction {
				t.Errorf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestService_Decide_StoreFailureSurfaces(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	svc := newTestService(&profileRepoMock{err: boom}, daytime)

	_, err := svc.Decide(context.Background(), taskFor("U1", 0), "W1", "U1")
	if !errors.Is(err, boom) {
		t.Fatalf("Decide = %v, want wrapped store failure", err)
	}
}
