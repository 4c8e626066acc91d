package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxGeneratedQuestions = 10
	// generationBatchSize keeps single LLM calls small; larger requests are
	// fanned out across concurrent calls.
	generationBatchSize   = 3
	maxConcurrentLLMCalls = 4
)

// GenerationService produces AI question drafts for an author to review.
type GenerationService interface {
	GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.GeneratedQuestionsResponse, error)
}

type generationServiceImpl struct {
	generator domain.QuestionGenerationService
}

// NewGenerationService creates a new instance of generationServiceImpl.
func NewGenerationService(generator domain.QuestionGenerationService) GenerationService {
	return &generationServiceImpl{generator: generator}
}

// GenerateQuestions fans the request out over batched LLM calls, validates
// every returned draft and drops malformed ones. It fails only when nothing
// usable came back.
func (s *generationServiceImpl) GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.GeneratedQuestionsResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}
	if req.NumQuestions < 1 || req.NumQuestions > maxGeneratedQuestions {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError("num_questions", req.NumQuestions, 1, maxGeneratedQuestions),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLLMCalls)

	var mu sync.Mutex
	var drafts []domain.QuestionDraft

	for remaining := req.NumQuestions; remaining > 0; remaining -= generationBatchSize {
		batch := generationBatchSize
		if remaining < batch {
			batch = remaining
		}
		g.Go(func() error {
			candidates, err := s.generator.GenerateQuestionCandidates(gctx, topic, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			drafts = append(drafts, candidates...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("question generation failed: %w", err))
	}

	valid := drafts[:0]
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			logger.Get().Warn("Dropping malformed generated question",
				zap.Error(err), zap.String("topic", topic))
			continue
		}
		valid = append(valid, draft)
	}
	if len(valid) > req.NumQuestions {
		valid = valid[:req.NumQuestions]
	}
	if len(valid) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("no usable questions generated for topic %q", topic))
	}

	logger.Get().Info("Generated question drafts",
		zap.String("topic", topic),
		zap.Int("requested", req.NumQuestions),
		zap.Int("returned", len(valid)))

	return &dto.GeneratedQuestionsResponse{
		Topic:     topic,
		Questions: valid,
	}, nil
}
