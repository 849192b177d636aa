package domain

import (
	"testing"
	"time"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestQuietHours_Contains(t *testing.T) {
	t.Parallel()

	overnight := QuietHours{Start: "22:00", End: "08:00"}
	daytime := QuietHours{Start: "12:00", End: "14:00"}

	tests := []struct {
		name string
		q    QuietHours
		at   time.Time
		want bool
	}{
		{"overnight late evening", overnight, clock(23, 0), true},
		{"overnight after midnight", overnight, clock(3, 30), true},
		{"overnight boundary start", overnight, clock(22, 0), true},
		{"overnight boundary end", overnight, clock(8, 0), false},
		{"overnight midday", overnight, clock(12, 0), false},
		{"daytime inside", daytime, clock(13, 0), true},
		{"daytime outside", daytime, clock(15, 0), false},
		{"malformed start", QuietHours{Start: "late", End: "08:00"}, clock(23, 0), false},
		{"malformed end", QuietHours{Start: "22:00", End: "25:99"}, clock(23, 0), false},
		{"empty window", QuietHours{}, clock(23, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.q.Contains(tt.at); got != tt.want {
				t.Errorf("QuietHours%+v.Contains(%s) = %v, want %v", tt.q, tt.at.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestDefaultNotificationPrefs(t *testing.T) {
	t.Parallel()

	p := DefaultNotificationPrefs()
	if !p.HasRule(RuleDirectTasks) || !p.HasRule(RuleUrgentCustomerIssues) {
		t.Errorf("defaults missing instant rules: %v", p.InstantFor)
	}
	if p.HasRule(RuleHighPriority) {
		t.Error("high_priority should not be a default instant rule")
	}
	if !p.BatchEverythingElse {
		t.Error("batch_everything_else should default to true")
	}
	if p.QuietHours.Start != "22:00" || p.QuietHours.End != "08:00" {
		t.Errorf("default quiet hours = %+v", p.QuietHours)
	}
}

func TestUserProfile_Prefs(t *testing.T) {
	t.Parallel()

	var nilProfile *UserProfile
	if got := nilProfile.Prefs(); !got.BatchEverythingElse {
		t.Error("nil profile should yield defaults")
	}

	custom := &UserProfile{NotificationPrefs: &NotificationPrefs{
		InstantFor: []string{RuleHighPriority},
	}}
	if got := custom.Prefs(); !got.HasRule(RuleHighPriority) || got.BatchEverythingElse {
		t.Errorf("stored prefs not returned as-is: %+v", got)
	}
}
