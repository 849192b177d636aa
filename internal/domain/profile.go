package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Instant-eligibility rule names recognized in NotificationPrefs.InstantFor.
const (
	RuleDirectTasks          = "direct_tasks"
	RuleUrgentCustomerIssues = "urgent_customer_issues"
	RuleHighPriority         = "high_priority"
)

// QuietHours is a per-user window during which instant notifications are
// downgraded to batched delivery. Start > End means the window spans
// midnight.
type QuietHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the clock time of now falls inside the window.
// Malformed bounds disable the window.
func (q QuietHours) Contains(now time.Time) bool {
	start, ok := parseClock(q.Start)
	if !ok {
		return false
	}
	end, ok := parseClock(q.End)
	if !ok {
		return false
	}

	cur := now.Hour()*60 + now.Minute()
	if start > end { // overnight wraparound
		return cur >= start || cur < end
	}
	return cur >= start && cur < end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// NotificationPrefs is the typed form of the per-user preference document.
// It is serialized to JSON at the store boundary, never manipulated as an
// opaque blob.
type NotificationPrefs struct {
	Version             int        `json:"version"`
	InstantFor          []string   `json:"instant_for"`
	BatchEverythingElse bool       `json:"batch_everything_else"`
	QuietHours          QuietHours `json:"quiet_hours"`
	FocusMode           bool       `json:"focus_mode"`
}

// DefaultNotificationPrefs returns the preferences used when a user has
// no stored profile.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		Version:             1,
		InstantFor:          []string{RuleDirectTasks, RuleUrgentCustomerIssues},
		BatchEverythingElse: true,
		QuietHours:          QuietHours{Start: "22:00", End: "08:00"},
	}
}

// HasRule reports whether a named instant-eligibility rule is enabled.
func (p NotificationPrefs) HasRule(name string) bool {
	for _, r := range p.InstantFor {
		if r == name {
			return true
		}
	}
	return false
}

// FocusSettings configures focus mode for a user.
type FocusSettings struct {
	TopNTasks           int  `json:"top_n_tasks"`
	SuppressLowPriority bool `json:"suppress_low_priority"`
}

// UserProfile stores per-user notification preferences and focus-mode
// state, unique per user id.
type UserProfile struct {
	ID          uuid.UUID
	WorkspaceID string
	UserID      string
	UserName    *string
	UserEmail   *string

	NotificationPrefs *NotificationPrefs
	FocusModeEnabled  bool
	FocusSettings     *FocusSettings

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Prefs returns the stored preferences or the defaults when unset.
func (u *UserProfile) Prefs() NotificationPrefs {
	if u == nil || u.NotificationPrefs == nil {
		return DefaultNotificationPrefs()
	}
	return *u.NotificationPrefs
}
