// Package knowledge implements the FAQ knowledge base: answers captured
// from resolved threads, searched by text or by question similarity.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mkossowski/agendum/internal/domain"
	"github.com/mkossowski/agendum/internal/extract"
)

// defaultSimilarityThreshold is the minimum word-set overlap for a
// stored question to count as a match.
const defaultSimilarityThreshold = 0.7

// faqRepo defines the FAQ store interface needed by the service.
type faqRepo interface {
	Create(ctx context.Context, f *domain.FAQAnswer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FAQAnswer, error)
	Search(ctx context.Context, workspaceID, query string, limit int) ([]domain.FAQAnswer, error)
	List(ctx context.Context, workspaceID string) ([]domain.FAQAnswer, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	PromoteToCanonical(ctx context.Context, id uuid.UUID) error
}

// Service implements knowledge-base operations.
type Service struct {
	log       *slog.Logger
	faqs      faqRepo
	threshold float64
}

// NewService creates a new knowledge service instance. A non-positive
// threshold falls back to the default.
func NewService(log *slog.Logger, faqs faqRepo, threshold float64) *Service {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	return &Service{
		log:       log.With("service", "knowledge"),
		faqs:      faqs,
		threshold: threshold,
	}
}

// CreateFAQInput carries the fields for a new FAQ answer.
type CreateFAQInput struct {
	WorkspaceID     string
	Question        string
	Answer          string
	SourceThreadTS  *string
	SourceChannelID *string
	SourceMessageTS *string
	Tags            []string
	IsCanonical     bool
}

// CreateFAQ stores a question/answer pair, usually captured when a
// thread is resolved.
func (s *Service) CreateFAQ(ctx context.Context, in CreateFAQInput) (*domain.FAQAnswer, error) {
	if strings.TrimSpace(in.Question) == "" {
		return nil, domain.NewValidationError("question", "question is required")
	}
	if strings.TrimSpace(in.Answer) == "" {
		return nil, domain.NewValidationError("answer", "answer is required")
	}

	f := &domain.FAQAnswer{
		ID:              uuid.New(),
		WorkspaceID:     in.WorkspaceID,
		Question:        in.Question,
		Answer:          in.Answer,
		SourceThreadTS:  in.SourceThreadTS,
		SourceChannelID: in.SourceChannelID,
		SourceMessageTS: in.SourceMessageTS,
		IsCanonical:     in.IsCanonical,
	}
	f.SetTags(in.Tags)

	if err := s.faqs.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}

	s.log.InfoContext(ctx, "faq created", slog.String("faq_id", f.ID.String()))
	return f, nil
}

// GetFAQ returns an FAQ answer by id.
func (s *Service) GetFAQ(ctx context.Context, id uuid.UUID) (*domain.FAQAnswer, error) {
	return s.faqs.GetByID(ctx, id)
}

// SearchFAQ matches the query against question and answer text,
// canonical answers first, then by usage.
func (s *Service) SearchFAQ(ctx context.Context, workspaceID, query string, limit int) ([]domain.FAQAnswer, error) {
	return s.faqs.Search(ctx, workspaceID, query, limit)
}

// FindSimilarQuestion looks for a stored question whose word set
// overlaps the asked one at or above the similarity threshold, and
// bumps the match's usage counter. No match reports ErrNotFound.
func (s *Service) FindSimilarQuestion(ctx context.Context, workspaceID, question string) (*domain.FAQAnswer, error) {
	faqs, err := s.faqs.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("find similar question: %w", err)
	}

	var best *domain.FAQAnswer
	bestScore := 0.0
	for i := range faqs {
		score := extract.TokenJaccard(question, faqs[i].Question)
		if score >= s.threshold && score > bestScore {
			best = &faqs[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, fmt.Errorf("find similar question: %w", domain.ErrNotFound)
	}

	if err := s.faqs.IncrementUsage(ctx, best.ID); err != nil {
		return nil, fmt.Errorf("find similar question: %w", err)
	}
	best.UsageCount++

	s.log.InfoContext(ctx, "similar question matched",
		slog.String("faq_id", best.ID.String()),
		slog.Float64("score", bestScore),
	)
	return best, nil
}

// PromoteToCanonical marks an FAQ answer as the canonical one for its
// question. The promotion is one-way.
func (s *Service) PromoteToCanonical(ctx context.Context, id uuid.UUID) error {
	if err := s.faqs.PromoteToCanonical(ctx, id); err != nil {
		return fmt.Errorf("promote to canonical: %w", err)
	}
	s.log.InfoContext(ctx, "faq promoted to canonical", slog.String("faq_id", id.String()))
	return nil
}
