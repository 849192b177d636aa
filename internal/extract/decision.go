package extract

import "strings"

// DecisionStatement is one decision phrase found in thread text, with the
// context needed to persist it.
type DecisionStatement struct {
	Text     string
	Project  string
	Mentions []string
}

// ExtractDecisions scans text for decision statements using the ordered
// pattern table; at most one statement per pattern is taken, deduplicated
// by body.
func ExtractDecisions(text, channelName string, channelProjectWins bool) []DecisionStatement {
	e := NewExtractor(ExtractorOptions{ChannelProjectWins: channelProjectWins})
	seen := map[string]bool{}
	var out []DecisionStatement
	for _, p := range decisionPatterns {
		sub := p.FindStringSubmatch(text)
		if sub == nil {
			continue
		}
		body := strings.TrimSpace(sub[1])
		if body == "" || seen[body] {
			continue
		}
		seen[body] = true
		out = append(out, DecisionStatement{
			Text:     body,
			Project:  e.ExtractProject(text, channelName),
			Mentions: mentionIDs(text),
		})
	}
	return out
}

// ContainsDecision reports whether any decision pattern matches text.
func ContainsDecision(text string) bool {
	for _, p := range decisionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// InferThreadTitle derives a thread title from its first message using
// the same sanitation as item titles.
func (e *Extractor) InferThreadTitle(firstMessage string) string {
	return e.ExtractTitle(firstMessage)
}

func mentionIDs(text string) []string {
	var ids []string
	for _, sub := range mentionIDRe.FindAllStringSubmatch(text, -1) {
		ids = append(ids, sub[1])
	}
	return ids
}
