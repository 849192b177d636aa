package extract

import (
	"testing"
	"time"
)

// ref is a Wednesday.
var wednesday = time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

func TestExtractDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		ref  time.Time
		want *time.Time
	}{
		{
			name: "by friday from wednesday",
			text: "please finish this by Friday",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "by friday on a friday rolls a full week",
			text: "finish by friday",
			ref:  time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
			want: timePtr(time.Date(2024, 6, 21, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "by eod",
			text: "need the numbers by EOD",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 12, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "by end of week",
			text: "wrap this up by end of week",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "end of week on friday rolls",
			text: "by eow please",
			ref:  time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
			want: timePtr(time.Date(2024, 6, 21, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "tomorrow",
			text: "I'll send it tomorrow",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 13, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "days from now",
			text: "due 3 days from now",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 15, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "hours from now keeps the clock",
			text: "need it 2 hours from now",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 12, 12, 30, 0, 0, time.UTC)),
		},
		{
			name: "explicit date without year",
			text: "ship by 6/20",
			ref:  wednesday,
			want: timePtr(time.Date(2024, 6, 20, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "explicit date with year",
			text: "ship by 1/15/2025",
			ref:  wednesday,
			want: timePtr(time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "before standup is unresolved",
			text: "need this before standup",
			ref:  wednesday,
			want: nil,
		},
		{
			name: "next week is unresolved",
			text: "let's revisit next week",
			ref:  wednesday,
			want: nil,
		},
		{
			name: "no deadline",
			text: "fix the login bug",
			ref:  wednesday,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractDueDate(tt.text, tt.ref)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Fatalf("ExtractDueDate(%q) = %v, want %v", tt.text, got, tt.want)
			case !got.Equal(*tt.want):
				t.Fatalf("ExtractDueDate(%q) = %v, want %v", tt.text, *got, *tt.want)
			}
		})
	}
}

func TestMatchDueDate_FirstRuleWins(t *testing.T) {
	t.Parallel()

	// "before standup" precedes "tomorrow" in the table; the earlier
	// rule wins even though it resolves to no timestamp.
	m, ok := MatchDueDate("before standup tomorrow", wednesday)
	if !ok {
		t.Fatal("expected a rule match")
	}
	if m.Rule != "before_event" {
		t.Fatalf("matched rule %q, want before_event", m.Rule)
	}
	if m.Due != nil {
		t.Fatalf("relative marker resolved to %v, want nil", *m.Due)
	}
}

func TestMatchDueDate_NoMatch(t *testing.T) {
	t.Parallel()

	if _, ok := MatchDueDate("nothing time related here", wednesday); ok {
		t.Fatal("expected no match")
	}
}
