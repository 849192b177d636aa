package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultDueHour is the hour of day assigned to day-granular deadlines.
const defaultDueHour = 17

// DueDateRule is one entry in the ordered deadline table. Resolve turns
// the regexp's submatches into an absolute timestamp relative to ref, or
// nil when the phrase is a relative marker that cannot be resolved
// without outside context ("before standup", "next week").
type DueDateRule struct {
	Name    string
	Pattern *regexp.Regexp
	Resolve func(sub []string, ref time.Time) *time.Time
}

// DueDateRules is consulted in order; the first matching rule wins, even
// when it resolves to no timestamp.
var DueDateRules = []DueDateRule{
	{
		Name:    "day_of_week",
		Pattern: regexp.MustCompile(`(?i)by\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
		Resolve: func(sub []string, ref time.Time) *time.Time {
			target := weekdayByName[strings.ToLower(sub[1])]
			ahead := (int(target) - int(ref.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return timePtr(atHour(ref.AddDate(0, 0, ahead), defaultDueHour))
		},
	},
	{
		Name:    "end_of_day",
		Pattern: regexp.MustCompile(`(?i)by\s+(eod|end of day)`),
		Resolve: func(_ []string, ref time.Time) *time.Time {
			return timePtr(atHour(ref, defaultDueHour))
		},
	},
	{
		Name:    "end_of_week",
		Pattern: regexp.MustCompile(`(?i)by\s+(eow|end of week)`),
		Resolve: func(_ []string, ref time.Time) *time.Time {
			ahead := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return timePtr(atHour(ref.AddDate(0, 0, ahead), defaultDueHour))
		},
	},
	{
		Name:    "before_event",
		Pattern: regexp.MustCompile(`(?i)before\s+(standup|meeting|demo)`),
		Resolve: func([]string, time.Time) *time.Time { return nil },
	},
	{
		Name:    "explicit_date",
		Pattern: regexp.MustCompile(`(?i)by\s+(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`),
		Resolve: func(sub []string, ref time.Time) *time.Time {
			month, _ := strconv.Atoi(sub[1])
			day, _ := strconv.Atoi(sub[2])
			if month < 1 || month > 12 || day < 1 || day > 31 {
				return nil
			}
			year := ref.Year()
			if sub[3] != "" {
				y, _ := strconv.Atoi(sub[3])
				if y < 100 {
					y += 2000
				}
				year = y
			}
			return timePtr(time.Date(year, time.Month(month), day, defaultDueHour, 0, 0, 0, ref.Location()))
		},
	},
	{
		Name:    "from_now",
		Pattern: regexp.MustCompile(`(?i)(\d+)\s+(days?|hours?)\s+from now`),
		Resolve: func(sub []string, ref time.Time) *time.Time {
			n, _ := strconv.Atoi(sub[1])
			if strings.HasPrefix(strings.ToLower(sub[2]), "hour") {
				return timePtr(ref.Add(time.Duration(n) * time.Hour))
			}
			return timePtr(atHour(ref.AddDate(0, 0, n), defaultDueHour))
		},
	},
	{
		Name:    "tomorrow",
		Pattern: regexp.MustCompile(`(?i)tomorrow`),
		Resolve: func(_ []string, ref time.Time) *time.Time {
			return timePtr(atHour(ref.AddDate(0, 0, 1), defaultDueHour))
		},
	},
	{
		Name:    "next_period",
		Pattern: regexp.MustCompile(`(?i)next\s+(week|month)`),
		Resolve: func([]string, time.Time) *time.Time { return nil },
	},
}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// DueDateMatch reports which rule fired and the timestamp it resolved to,
// if any.
type DueDateMatch struct {
	Rule string
	Due  *time.Time
}

// MatchDueDate runs the deadline table against text. ok is false when no
// rule matched at all; a match with a nil Due means the phrase was
// recognized as a relative marker only.
func MatchDueDate(text string, ref time.Time) (DueDateMatch, bool) {
	for _, r := range DueDateRules {
		if sub := r.Pattern.FindStringSubmatch(text); sub != nil {
			return DueDateMatch{Rule: r.Name, Due: r.Resolve(sub, ref)}, true
		}
	}
	return DueDateMatch{}, false
}

// ExtractDueDate returns the resolved deadline for text, or nil.
func ExtractDueDate(text string, ref time.Time) *time.Time {
	m, ok := MatchDueDate(text, ref)
	if !ok {
		return nil
	}
	return m.Due
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func timePtr(t time.Time) *time.Time { return &t }
