package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkossowski/agendum/internal/domain"
)

// Decision routing reasons. Reason names the rule (or override) that
// produced the action, for the delivery layer's logs.
const (
	ReasonQuietHours = "quiet_hours"
	ReasonDefault    = "batch_default"
)

// Decision is the outcome of routing one item to one recipient.
type Decision struct {
	Action domain.NotifyAction
	Reason string
}

// Decide routes an item notification for a recipient. Missing profiles
// fall back to the default preferences; storage failures surface so the
// caller can retry.
func (s *Service) Decide(ctx context.Context, item *domain.Item, workspaceID, userID string) (Decision, error) {
	profile, err := s.profiles.GetByUserID(ctx, workspaceID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return Decision{}, fmt.Errorf("load recipient profile: %w", err)
	}

	d := s.decide(item, profile.Prefs(), userID)
	s.log.DebugContext(ctx, "notification routed",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", userID),
		slog.String("action", string(d.Action)),
		slog.String("reason", d.Reason),
	)
	return d, nil
}

// decide is the pure core: quiet hours first, then the
// instant-eligibility rules in preference order, then the batch default.
func (s *Service) decide(item *domain.Item, prefs domain.NotificationPrefs, userID string) Decision {
	// Quiet hours beat everything: even urgent work waits until morning.
	if prefs.QuietHours.Contains(s.now()) {
		return Decision{Action: domain.NotifyBatch, Reason: ReasonQuietHours}
	}

	for _, rule := range prefs.InstantFor {
		if ruleMatches(rule, item, userID) {
			return Decision{Action: domain.NotifyInstant, Reason: rule}
		}
	}

	if prefs.BatchEverythingElse {
		return Decision{Action: domain.NotifyBatch, Reason: ReasonDefault}
	}
	return Decision{Action: domain.NotifySilent, Reason: ReasonDefault}
}

// ruleMatches evaluates one named instant-eligibility rule. Unknown rule
// names never match; they are preserved in stored prefs for forward
// compatibility.
func ruleMatches(rule string, item *domain.Item, userID string) bool {
	switch rule {
	case domain.RuleDirectTasks:
		return item.Type == domain.ItemTypeTask &&
			item.AssignedToUserID != nil && *item.AssignedToUserID == userID &&
			item.Priority >= domain.PriorityHigh
	case domain.RuleUrgentCustomerIssues:
		if item.Priority != domain.PriorityUrgent {
			return false
		}
		var project, channel string
		if item.Project != nil {
			project = strings.ToLower(*item.Project)
		}
		if item.SourceChannelName != nil {
			channel = strings.ToLower(*item.SourceChannelName)
		}
		return strings.Contains(project, "customer") || strings.Contains(channel, "support")
	case domain.RuleHighPriority:
		return item.Priority >= domain.PriorityHigh
	default:
		return false
	}
}
