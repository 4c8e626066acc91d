package service

import (
	"context"
	"fmt"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// AttemptService scores submissions server-side and records the results.
type AttemptService interface {
	SubmitAttempt(ctx context.Context, userID string, quizID string, req dto.SubmitAttemptRequest) (*dto.ScoreResultResponse, error)
	GetAttempt(ctx context.Context, userID string, attemptID string) (*dto.ScoreResultResponse, error)
}

type attemptServiceImpl struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	quizCache   QuizCacheService
	policy      domain.UnansweredPolicy
}

// NewAttemptService creates a new instance of attemptServiceImpl.
func NewAttemptService(quizRepo domain.QuizRepository, attemptRepo domain.AttemptRepository, quizCache QuizCacheService, cfg *config.Config) AttemptService {
	return &attemptServiceImpl{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		quizCache:   quizCache,
		policy:      domain.ParseUnansweredPolicy(cfg.Scoring.UnansweredPolicy),
	}
}

// SubmitAttempt loads the quiz with its answer key, scores the submission and
// persists the attempt. The client never sees the key itself, only the scored
// details.
func (s *attemptServiceImpl) SubmitAttempt(ctx context.Context, userID string, quizID string, req dto.SubmitAttemptRequest) (*dto.ScoreResultResponse, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	submission := req.ToSubmission()
	result := domain.ScoreSubmission(quiz.Questions, submission, s.policy)

	attempt := &domain.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Submission:     submission,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Details:        result.Details,
	}
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("failed to record attempt", err)
	}

	logger.Get().Info("Attempt scored",
		zap.String("attemptID", attempt.ID),
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.Int("score", result.Score),
		zap.Int("totalQuestions", result.TotalQuestions),
		zap.Float64("percentage", result.Percentage))

	return dto.NewScoreResultResponse(attempt), nil
}

// GetAttempt returns a previously recorded attempt. Attempts are private to
// the user who made them.
func (s *attemptServiceImpl) GetAttempt(ctx context.Context, userID string, attemptID string) (*dto.ScoreResultResponse, error) {
	attempt, err := s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load attempt %s", attemptID), err)
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	if attempt.UserID != userID {
		return nil, domain.NewForbiddenError("attempts are only visible to their owner")
	}
	return dto.NewScoreResultResponse(attempt), nil
}

func (s *attemptServiceImpl) loadQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if s.quizCache != nil {
		if cached, err := s.quizCache.GetQuiz(ctx, quizID); err == nil && cached != nil {
			return cached, nil
		}
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load quiz %s", quizID), err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	if s.quizCache != nil {
		_ = s.quizCache.PutQuiz(ctx, quiz)
	}
	return quiz, nil
}
