// Package extract turns raw chat messages into candidate work items using
// deterministic, ordered rule tables. Everything here is pure: no storage,
// no clock other than the supplied reference timestamp, and no errors.
// Malformed input degrades to zero values.
package extract

import (
	"regexp"

	"github.com/mkossowski/agendum/internal/domain"
)

// markerRule maps a set of explicit text markers to an item type. Marker
// rules are checked in order and always win over phrase patterns; the
// first rule with any matching marker decides the type.
type markerRule struct {
	Type    domain.ItemType
	Markers []string
}

// typeMarkerRules is the explicit-marker table, in priority order:
// task > decision > question > announcement.
var typeMarkerRules = []markerRule{
	{domain.ItemTypeTask, []string{"todo:", "action item:", "task:"}},
	{domain.ItemTypeDecision, []string{"decision:", "we decided", "agreed to", "consensus:"}},
	{domain.ItemTypeQuestion, []string{"question:", "?", "can someone", "does anyone"}},
	{domain.ItemTypeAnnouncement, []string{"announcement:", "announcing", "update:"}},
}

// taskPhrasePatterns are the ordered task-indicating phrases consulted
// when no explicit marker is present.
var taskPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`can you\s+[^?.!]+`),
	regexp.MustCompile(`please\s+[^?.!]+`),
	regexp.MustCompile(`i need you to\s+[^?.!]+`),
	regexp.MustCompile(`@\w+\s+can you\s+[^?.!]+`),
	regexp.MustCompile(`@\w+\s+please\s+[^?.!]+`),
	regexp.MustCompile(`i'll\s+[^?.!]+`),
	regexp.MustCompile(`let's\s+[^?.!]+`),
	regexp.MustCompile(`we should\s+[^?.!]+`),
}

// completionKeywords mark a message as reporting finished work.
var completionKeywords = []string{
	"done", "finished", "completed", "resolved", "closed", "✅", "✓",
}

// importanceKeywords rescue a plain note from the chatter filter.
var importanceKeywords = []string{"important", "note:", "reminder", "update"}

// decisionPatterns capture decision statements inside thread messages,
// in match-priority order. Group 1 is the decision body.
var decisionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)we'll go with\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)final decision:\s*([^.!?\n]+)`),
	regexp.MustCompile(`(?i)consensus:\s*([^.!?\n]+)`),
	regexp.MustCompile(`(?i)we decided\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)agreed to\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)decision:\s*([^.!?\n]+)`),
	regexp.MustCompile(`(?i)decided:\s*([^.!?\n]+)`),
}

var (
	mentionMarkupRe = regexp.MustCompile(`<@\w+>`)
	bracketURLRe    = regexp.MustCompile(`<https?://[^>]+>`)
	bareURLRe       = regexp.MustCompile(`https?://\S+`)
	markdownRe      = regexp.MustCompile("[*_`]")
	atNameRe        = regexp.MustCompile(`@(\w+)`)
	mentionIDRe     = regexp.MustCompile(`<@(\w+)>`)
	projectTagRe    = regexp.MustCompile(`(?i)project[:\s]+(\w+)`)
)

// projectChannelPrefixes mark a channel as belonging to a project; such a
// channel's name is used as the item's project.
var projectChannelPrefixes = []string{"proj-", "project-", "team-"}
