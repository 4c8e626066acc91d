package service

import (
	"context"
	"encoding/json"

	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// QuizCacheService keeps full quiz definitions (answer key included) in the
// cache so scoring does not hit the database on every submission.
type QuizCacheService interface {
	GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error)
	PutQuiz(ctx context.Context, quiz *domain.Quiz) error
	InvalidateQuiz(ctx context.Context, quizID string) error
}

type quizCacheServiceImpl struct {
	cache domain.Cache
	cfg   *config.Config
}

// NewQuizCacheService creates a new instance of quizCacheServiceImpl.
func NewQuizCacheService(cacheClient domain.Cache, cfg *config.Config) QuizCacheService {
	return &quizCacheServiceImpl{
		cache: cacheClient,
		cfg:   cfg,
	}
}

func quizCacheKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "definition", quizID)
}

// GetQuiz returns the cached quiz, or (nil, nil) on a miss. Cache failures are
// logged and reported as misses so the caller falls through to the repository.
func (s *quizCacheServiceImpl) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if s.cache == nil {
		return nil, nil
	}

	key := quizCacheKey(quizID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, nil
		}
		logger.Get().Warn("Quiz cache lookup failed",
			zap.Error(err), zap.String("key", key), zap.String("quizID", quizID))
		return nil, nil
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		logger.Get().Warn("Failed to unmarshal cached quiz, treating as miss",
			zap.Error(err), zap.String("quizID", quizID))
		return nil, nil
	}
	return &quiz, nil
}

// PutQuiz stores the quiz definition with the configured TTL.
func (s *quizCacheServiceImpl) PutQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if s.cache == nil || quiz == nil {
		return nil
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Error("Failed to marshal quiz for caching",
			zap.Error(err), zap.String("quizID", quiz.ID))
		return err
	}

	key := quizCacheKey(quiz.ID)
	if err := s.cache.Set(ctx, key, string(data), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz",
			zap.Error(err), zap.String("key", key), zap.String("quizID", quiz.ID))
		return err
	}
	return nil
}

// InvalidateQuiz drops the cached definition after an update or delete.
func (s *quizCacheServiceImpl) InvalidateQuiz(ctx context.Context, quizID string) error {
	if s.cache == nil {
		return nil
	}
	key := quizCacheKey(quizID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate cached quiz",
			zap.Error(err), zap.String("key", key), zap.String("quizID", quizID))
		return err
	}
	return nil
}
