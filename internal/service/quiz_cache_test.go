package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cacheTestConfig() *config.Config {
	return &config.Config{Cache: config.CacheConfig{QuizTTL: 5 * time.Minute}}
}

func TestQuizCacheService_PutAndGet(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewQuizCacheService(cacheMock, cacheTestConfig())

	quiz := ownedQuiz("quiz1", "owner1")

	var stored string
	cacheMock.On("Set", mock.Anything, quizCacheKey("quiz1"), mock.AnythingOfType("string"), 5*time.Minute).
		Run(func(args mock.Arguments) {
			stored = args.String(2)
		}).Return(nil)

	require.NoError(t, svc.PutQuiz(context.Background(), quiz))

	cacheMock.On("Get", mock.Anything, quizCacheKey("quiz1")).Return(stored, nil)

	got, err := svc.GetQuiz(context.Background(), "quiz1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, quiz.ID, got.ID)
	require.Len(t, got.Questions, 1)
	assert.True(t, got.Questions[0].Answers[0].IsCorrect, "the answer key survives the cache round trip")
	cacheMock.AssertExpectations(t)
}

func TestQuizCacheService_GetQuiz_Miss(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewQuizCacheService(cacheMock, cacheTestConfig())

	cacheMock.On("Get", mock.Anything, quizCacheKey("quiz1")).Return("", domain.ErrCacheMiss)

	got, err := svc.GetQuiz(context.Background(), "quiz1")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuizCacheService_GetQuiz_BackendErrorIsAMiss(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewQuizCacheService(cacheMock, cacheTestConfig())

	cacheMock.On("Get", mock.Anything, quizCacheKey("quiz1")).Return("", errors.New("redis down"))

	got, err := svc.GetQuiz(context.Background(), "quiz1")

	assert.NoError(t, err, "cache failures degrade to misses, never to request errors")
	assert.Nil(t, got)
}

func TestQuizCacheService_GetQuiz_CorruptEntryIsAMiss(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewQuizCacheService(cacheMock, cacheTestConfig())

	cacheMock.On("Get", mock.Anything, quizCacheKey("quiz1")).Return("{not json", nil)

	got, err := svc.GetQuiz(context.Background(), "quiz1")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuizCacheService_InvalidateQuiz(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewQuizCacheService(cacheMock, cacheTestConfig())

	cacheMock.On("Delete", mock.Anything, quizCacheKey("quiz1")).Return(nil)

	assert.NoError(t, svc.InvalidateQuiz(context.Background(), "quiz1"))
	cacheMock.AssertExpectations(t)
}

func TestQuizCacheService_NilCacheIsANoop(t *testing.T) {
	svc := NewQuizCacheService(nil, cacheTestConfig())

	got, err := svc.GetQuiz(context.Background(), "quiz1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, svc.PutQuiz(context.Background(), ownedQuiz("quiz1", "owner1")))
	assert.NoError(t, svc.InvalidateQuiz(context.Background(), "quiz1"))
}
