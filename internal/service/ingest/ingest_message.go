package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/internal/extract"
)

// Result describes what one message produced.
type Result struct {
	Item        *domain.Item
	Decision    *domain.Decision
	ClosedTasks int64
}

// IngestMessage runs the extraction pipeline over one message.
// Extraction itself never fails; only storage errors surface. A message
// that clears no gate produces an empty Result, not an error.
func (s *Service) IngestMessage(ctx context.Context, msg extract.Message) (Result, error) {
	now := s.now()

	// A completion report inside a thread closes the thread's open tasks
	// instead of creating a new item.
	if s.extractor.DetectCompletion(msg.Text) && isThreadReply(msg) {
		closed, err := s.items.CloseThreadTasks(ctx, msg.ChannelID, msg.ThreadTS, msg.Time(now))
		if err != nil {
			return Result{}, fmt.Errorf("close thread tasks: %w", err)
		}
		if closed > 0 {
			s.log.InfoContext(ctx, "thread tasks closed by completion report",
				slog.String("channel_id", msg.ChannelID),
				slog.String("thread_ts", msg.ThreadTS),
				slog.Int64("closed", closed),
			)
			return Result{ClosedTasks: closed}, nil
		}
	}

	var res Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if item, ok := s.extractor.BuildCandidate(msg, now); ok {
			persisted, _, err := s.items.Upsert(ctx, item)
			if err != nil {
				return fmt.Errorf("store extracted item: %w", err)
			}
			res.Item = persisted
		}

		dec, err := s.captureDecision(ctx, msg, res.Item)
		if err != nil {
			return err
		}
		res.Decision = dec
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if res.Item != nil {
		s.log.InfoContext(ctx, "message ingested",
			slog.String("item_id", res.Item.ID.String()),
			slog.String("type", string(res.Item.Type)),
		)
	}
	return res, nil
}

// captureDecision records the first decision statement in the message,
// linked to the extracted item when there is one.
func (s *Service) captureDecision(ctx context.Context, msg extract.Message, item *domain.Item) (*domain.Decision, error) {
	statements := extract.ExtractDecisions(msg.Text, msg.ChannelName, true)
	if len(statements) == 0 {
		return nil, nil
	}
	st := statements[0]

	dec := &domain.Decision{
		WorkspaceID:  msg.WorkspaceID,
		DecisionText: st.Text,
	}
	if item != nil {
		dec.ItemID = &item.ID
	}
	if st.Project != "" {
		p := st.Project
		dec.Project = &p
	}
	dec.SetInvolvedUsers(st.Mentions)
	setIfNotEmpty(&dec.ChannelID, msg.ChannelID)
	setIfNotEmpty(&dec.ThreadTS, threadRef(msg))
	setIfNotEmpty(&dec.DecisionMessageTS, msg.TS)

	if err := s.decisions.Create(ctx, dec); err != nil {
		return nil, fmt.Errorf("store decision: %w", err)
	}

	// Earlier decisions in the same thread often predate the project tag.
	if dec.Project != nil && dec.ChannelID != nil && dec.ThreadTS != nil {
		if _, err := s.decisions.BackfillProject(ctx, *dec.ChannelID, *dec.ThreadTS, *dec.Project); err != nil {
			return nil, fmt.Errorf("backfill decision project: %w", err)
		}
	}
	return dec, nil
}

// isThreadReply reports whether the message is a reply inside a thread
// rather than a thread root.
func isThreadReply(msg extract.Message) bool {
	return msg.ThreadTS != "" && msg.ThreadTS != msg.TS
}

// threadRef returns the thread timestamp to record for a message: its
// parent thread, or its own ts when it is the root.
func threadRef(msg extract.Message) string {
	if msg.ThreadTS != "" {
		return msg.ThreadTS
	}
	return msg.TS
}

func setIfNotEmpty(dst **string, v string) {
	if v != "" {
		s := v
		*dst = &s
	}
}
