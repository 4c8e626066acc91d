package service

import (
	"context"
	"fmt"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz authoring and reading.
type QuizService interface {
	CreateQuiz(ctx context.Context, ownerID string, req dto.CreateQuizRequest) (*dto.CreateQuizResponse, error)
	UpdateQuiz(ctx context.Context, ownerID string, quizID string, req dto.UpdateQuizRequest) error
	DeleteQuiz(ctx context.Context, ownerID string, quizID string) error
	GetQuizForTaking(ctx context.Context, quizID string) (*dto.QuizTakingResponse, error)
	GetQuizForEditing(ctx context.Context, ownerID string, quizID string) (*dto.QuizFullResponse, error)
	ListQuizzes(ctx context.Context, pagination dto.Pagination) (*dto.QuizListResponse, error)
}

type quizServiceImpl struct {
	repo      domain.QuizRepository
	quizCache QuizCacheService
}

// NewQuizService creates a new instance of quizServiceImpl.
func NewQuizService(repo domain.QuizRepository, quizCache QuizCacheService) QuizService {
	return &quizServiceImpl{
		repo:      repo,
		quizCache: quizCache,
	}
}

// CreateQuiz validates and persists a new quiz definition.
func (s *quizServiceImpl) CreateQuiz(ctx context.Context, ownerID string, req dto.CreateQuizRequest) (*dto.CreateQuizResponse, error) {
	quiz := req.ToDomain(ownerID)
	if errs := quiz.Validate(); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.CreateQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to create quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("ownerID", ownerID),
		zap.Int("questions", len(quiz.Questions)))
	return &dto.CreateQuizResponse{ID: quiz.ID}, nil
}

// UpdateQuiz replaces the definition of a quiz the caller owns.
func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, ownerID string, quizID string, req dto.UpdateQuizRequest) error {
	existing, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.NewForbiddenError("only the quiz owner can edit it")
	}

	quiz := req.ToDomain(ownerID)
	quiz.ID = quizID
	quiz.CreatedAt = existing.CreatedAt
	if errs := quiz.Validate(); len(errs) > 0 {
		return errs
	}

	if err := s.repo.UpdateQuiz(ctx, quiz); err != nil {
		if _, ok := err.(*domain.DomainError); ok {
			return err
		}
		return domain.NewInternalError(fmt.Sprintf("failed to update quiz %s", quizID), err)
	}

	if s.quizCache != nil {
		_ = s.quizCache.InvalidateQuiz(ctx, quizID)
	}

	logger.Get().Info("Quiz updated", zap.String("quizID", quizID), zap.String("ownerID", ownerID))
	return nil
}

// DeleteQuiz soft-deletes a quiz the caller owns.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, ownerID string, quizID string) error {
	existing, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.NewForbiddenError("only the quiz owner can delete it")
	}

	if err := s.repo.DeleteQuiz(ctx, quizID); err != nil {
		if _, ok := err.(*domain.DomainError); ok {
			return err
		}
		return domain.NewInternalError(fmt.Sprintf("failed to delete quiz %s", quizID), err)
	}

	if s.quizCache != nil {
		_ = s.quizCache.InvalidateQuiz(ctx, quizID)
	}

	logger.Get().Info("Quiz deleted", zap.String("quizID", quizID), zap.String("ownerID", ownerID))
	return nil
}

// GetQuizForTaking returns the participant view of a quiz. Correctness flags
// never leave the server here; scoring happens on submission.
func (s *quizServiceImpl) GetQuizForTaking(ctx context.Context, quizID string) (*dto.QuizTakingResponse, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizTakingResponse(quiz), nil
}

// GetQuizForEditing returns the full definition, answer key included. Only the
// owner may see it.
func (s *quizServiceImpl) GetQuizForEditing(ctx context.Context, ownerID string, quizID string) (*dto.QuizFullResponse, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.OwnerID != ownerID {
		return nil, domain.NewForbiddenError("only the quiz owner can view the answer key")
	}
	return dto.NewQuizFullResponse(quiz), nil
}

// ListQuizzes returns a page of quiz summaries.
func (s *quizServiceImpl) ListQuizzes(ctx context.Context, pagination dto.Pagination) (*dto.QuizListResponse, error) {
	quizzes, total, err := s.repo.ListQuizzes(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	summaries := make([]dto.QuizSummaryResponse, len(quizzes))
	for i, q := range quizzes {
		summaries[i] = dto.QuizSummaryResponse{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: q.QuestionCount,
			CreatedAt:     q.CreatedAt,
		}
	}

	return &dto.QuizListResponse{
		Quizzes:        summaries,
		PaginationInfo: dto.NewPaginationInfo(pagination.Limit, pagination.Offset, total),
	}, nil
}

// loadQuiz reads a quiz through the cache, falling back to the repository and
// populating the cache on the way out.
func (s *quizServiceImpl) loadQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if s.quizCache != nil {
		if cached, err := s.quizCache.GetQuiz(ctx, quizID); err == nil && cached != nil {
			return cached, nil
		}
	}

	quiz, err := s.repo.GetQuizByID(ctx, quizID)
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
