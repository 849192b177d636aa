package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
)

// Message is a normalized chat message as delivered by the transport
// layer. TS and ThreadTS use the platform's "seconds.fraction" form.
type Message struct {
	Text        string
	AuthorID    string
	AuthorName  string
	ChannelID   string
	ChannelName string
	WorkspaceID string
	TS          string
	ThreadTS    string
	Mentions    []string
}

// Time resolves the message timestamp, falling back to now for
// unparseable values.
func (m Message) Time(now time.Time) time.Time {
	if m.TS == "" {
		return now
	}
	sec, _, _ := strings.Cut(m.TS, ".")
	n, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return now
	}
	return time.Unix(n, 0).In(now.Location())
}

// Permalink builds the canonical archive URL for the message.
func (m Message) Permalink() string {
	if m.ChannelID == "" || m.TS == "" {
		return ""
	}
	return fmt.Sprintf("https://slack.com/archives/%s/p%s", m.ChannelID, strings.ReplaceAll(m.TS, ".", ""))
}

// BuildCandidate assembles a new work item from a message, or reports
// false when the message does not clear the ingestion gates: too short,
// or a plain note with no importance keyword. The returned item carries
// a fresh ID and is ready for the store.
func (e *Extractor) BuildCandidate(msg Message, now time.Time) (*domain.Item, bool) {
	text := strings.TrimSpace(msg.Text)
	if len(text) < e.minMessageLen {
		return nil, false
	}

	itemType := e.DetectType(text)
	if itemType == domain.ItemTypeNote && !hasImportanceKeyword(text) {
		return nil, false
	}

	ref := msg.Time(now)
	item := &domain.Item{
		ID:        uuid.New(),
		Type:      itemType,
		Status:    domain.StatusOpen,
		Title:     e.ExtractTitle(text),
		CreatedAt: ref,
		UpdatedAt: ref,
	}

	// Full text as description keeps long messages searchable; the
	// snippet is only a display excerpt.
	description := text
	item.Description = &description
	snippet := e.Snippet(text)
	item.RawSnippet = &snippet
	setIfNotEmpty(&item.WorkspaceID, msg.WorkspaceID)
	setIfNotEmpty(&item.SourceChannelID, msg.ChannelID)
	setIfNotEmpty(&item.SourceChannelName, msg.ChannelName)
	setIfNotEmpty(&item.SourceMessageTS, msg.TS)
	setIfNotEmpty(&item.SourceThreadTS, msg.ThreadTS)
	setIfNotEmpty(&item.SourceURL, msg.Permalink())
	setIfNotEmpty(&item.RequestorUserID, msg.AuthorID)
	setIfNotEmpty(&item.RequestorUserName, msg.AuthorName)
	setIfNotEmpty(&item.CreatedByUserID, msg.AuthorID)

	if assignee := e.ExtractAssignee(text, msg.Mentions); assignee != "" {
		item.AssignedToUserID = &assignee
	}
	if project := e.ExtractProject(text, msg.ChannelName); project != "" {
		item.Project = &project
	}
	item.DueDate = ExtractDueDate(text, ref)

	if e.DetectCompletion(text) {
		item.Status = domain.StatusCompleted
		completedAt := ref
		item.CompletedAt = &completedAt
	}
	return item, true
}

func setIfNotEmpty(dst **string, v string) {
	if v != "" {
		s := v
		*dst = &s
	}
}
