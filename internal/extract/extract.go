package extract

import (
	"strings"

	"github.com/mkossowski/agendum/internal/domain"
)

const (
	// DefaultMinMessageLen is the shortest message worth extracting from.
	DefaultMinMessageLen = 10
	// DefaultTitleMaxLen bounds extracted titles, ellipsis included.
	DefaultTitleMaxLen = 100
	// DefaultSnippetLen bounds the raw-text snippet kept on an item.
	DefaultSnippetLen = 200
	// untitledFallback is used when sanitizing leaves nothing usable.
	untitledFallback = "Untitled"
)

// Extractor applies the rule tables with per-workspace tunables.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	minMessageLen      int
	titleMaxLen        int
	snippetLen         int
	channelProjectWins bool
}

// ExtractorOptions tune extraction. Zero-valued fields fall back to
// package defaults.
type ExtractorOptions struct {
	MinMessageLen      int
	TitleMaxLen        int
	SnippetLen         int
	ChannelProjectWins bool
}

func NewExtractor(opts ExtractorOptions) *Extractor {
	e := &Extractor{
		minMessageLen:      opts.MinMessageLen,
		titleMaxLen:        opts.TitleMaxLen,
		snippetLen:         opts.SnippetLen,
		channelProjectWins: opts.ChannelProjectWins,
	}
	if e.minMessageLen <= 0 {
		e.minMessageLen = DefaultMinMessageLen
	}
	if e.titleMaxLen <= 0 {
		e.titleMaxLen = DefaultTitleMaxLen
	}
	if e.snippetLen <= 0 {
		e.snippetLen = DefaultSnippetLen
	}
	return e
}

// DetectType classifies text. Explicit markers win in table order; task
// phrase patterns are consulted next; everything else is a note.
func (e *Extractor) DetectType(text string) domain.ItemType {
	lower := strings.ToLower(text)
	for _, rule := range typeMarkerRules {
		for _, marker := range rule.Markers {
			if strings.Contains(lower, marker) {
				return rule.Type
			}
		}
	}
	for _, p := range taskPhrasePatterns {
		if p.MatchString(lower) {
			return domain.ItemTypeTask
		}
	}
	return domain.ItemTypeNote
}

// ExtractAssignee prefers the platform's structured mention list; failing
// that, the first @name token in the text. Empty when neither exists.
func (e *Extractor) ExtractAssignee(text string, mentions []string) string {
	if len(mentions) > 0 {
		return mentions[0]
	}
	if sub := atNameRe.FindStringSubmatch(text); sub != nil {
		return sub[1]
	}
	return ""
}

// ExtractTitle produces a one-line title: mention markup, URLs and
// markdown are stripped, the first sentence of the first line is kept,
// and the result is truncated to the configured bound with an ellipsis.
func (e *Extractor) ExtractTitle(text string) string {
	clean := mentionMarkupRe.ReplaceAllString(text, "")
	clean = bracketURLRe.ReplaceAllString(clean, "")
	clean = bareURLRe.ReplaceAllString(clean, "")
	clean = markdownRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return untitledFallback
	}

	line := clean
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(firstSentence(line))
	if line == "" {
		return untitledFallback
	}
	return e.truncate(line, e.titleMaxLen)
}

// ExtractProject resolves the item's project from an inline "project:"
// tag or a project-style channel name. When both are present the
// channelProjectWins flag decides.
func (e *Extractor) ExtractProject(text, channelName string) string {
	var fromText, fromChannel string
	if sub := projectTagRe.FindStringSubmatch(text); sub != nil {
		fromText = strings.ToLower(sub[1])
	}
	lower := strings.ToLower(channelName)
	for _, prefix := range projectChannelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			fromChannel = lower
			break
		}
	}
	if fromChannel != "" && (e.channelProjectWins || fromText == "") {
		return fromChannel
	}
	return fromText
}

// DetectCompletion reports whether text announces finished work.
func (e *Extractor) DetectCompletion(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range completionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Snippet returns the leading slice of text kept for provenance,
// ellipsized when truncated.
func (e *Extractor) Snippet(text string) string {
	return cutRunes(text, e.snippetLen)
}

func (e *Extractor) truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func cutRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func firstSentence(s string) string {
	for i, r := range s {
		switch r {
		case '.', '!', '?':
			return s[:i]
		}
	}
	return s
}

func hasImportanceKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range importanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
