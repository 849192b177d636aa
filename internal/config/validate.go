package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Extract.validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (e *ExtractConfig) validate() error {
	if e.MinMessageLen < 0 {
		return fmt.Errorf("min_message_len must be >= 0 (got %d)", e.MinMessageLen)
	}
	if e.TitleMaxLen < 10 {
		return fmt.Errorf("title_max_len must be >= 10 (got %d)", e.TitleMaxLen)
	}
	if e.SnippetLen <= 0 {
		return fmt.Errorf("snippet_len must be > 0 (got %d)", e.SnippetLen)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.SearchDefaultLimit <= 0 {
		return fmt.Errorf("search_default_limit must be > 0 (got %d)", e.SearchDefaultLimit)
	}
	if e.StaleAfterDays <= 0 {
		return fmt.Errorf("stale_after_days must be > 0 (got %d)", e.StaleAfterDays)
	}
	if e.FocusTopN <= 0 {
		return fmt.Errorf("focus_top_n must be > 0 (got %d)", e.FocusTopN)
	}
	if e.DigestItemLimit <= 0 {
		return fmt.Errorf("digest_item_limit must be > 0 (got %d)", e.DigestItemLimit)
	}
	return nil
}
