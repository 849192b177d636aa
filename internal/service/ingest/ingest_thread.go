package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/internal/extract"
)

// ThreadResult summarizes one thread-processing pass.
type ThreadResult struct {
	Title       *domain.ThreadTitle
	Results     []Result
	ClosedTasks int64
}

// IngestThread processes a whole thread: the title is inferred from the
// first message, then every message runs through the extraction pipeline.
// Messages are ordered as given; the caller supplies them oldest first.
func (s *Service) IngestThread(ctx context.Context, msgs []extract.Message) (ThreadResult, error) {
	if len(msgs) == 0 {
		return ThreadResult{}, nil
	}

	root := msgs[0]
	now := s.now()

	lastActivity := msgs[len(msgs)-1].Time(now)
	title := &domain.ThreadTitle{
		WorkspaceID:    root.WorkspaceID,
		ChannelID:      root.ChannelID,
		ThreadTS:       threadRef(root),
		Title:          s.extractor.InferThreadTitle(root.Text),
		InferredBy:     domain.InferredByFirstMessage,
		LastActivityAt: &lastActivity,
		MessageCount:   len(msgs),
	}
	if err := s.threads.UpsertTitle(ctx, title); err != nil {
		return ThreadResult{}, fmt.Errorf("store thread title: %w", err)
	}

	out := ThreadResult{Title: title}
	for _, msg := range msgs {
		res, err := s.IngestMessage(ctx, msg)
		if err != nil {
			return out, err
		}
		out.ClosedTasks += res.ClosedTasks
		if res.Item != nil || res.Decision != nil {
			out.Results = append(out.Results, res)
		}
	}

	s.log.InfoContext(ctx, "thread ingested",
		slog.String("thread_ts", title.ThreadTS),
		slog.Int("messages", len(msgs)),
		slog.Int("extracted", len(out.Results)),
	)
	return out, nil
}
