package service

import (
	"context"
	"testing"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserProfile_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil, nil)

	userRepo.On("GetUserByID", mock.Anything, "user1").Return(&domain.User{
		ID:                "user1",
		Email:             "test@example.com",
		Name:              "Test User",
		ProfilePictureURL: "http://example.com/pic.jpg",
	}, nil)

	resp, err := svc.GetUserProfile(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, "user1", resp.ID)
	assert.Equal(t, "test@example.com", resp.Email)
	assert.Equal(t, "Test User", resp.Name)
}

func TestUserService_GetUserProfile_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil, nil)

	userRepo.On("GetUserByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetUserProfile(context.Background(), "missing")

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestUserService_GetUserAttempts_ResolvesQuizTitlesOnce(t *testing.T) {
	userRepo := new(MockUserRepository)
	attemptRepo := new(MockAttemptRepository)
	quizRepo := new(MockQuizRepository)
	svc := NewUserService(userRepo, attemptRepo, quizRepo)

	now := time.Now()
	attempts := []domain.QuizAttempt{
		{ID: "attempt3", QuizID: "quiz1", Score: 2, TotalQuestions: 2, Percentage: 100, AttemptedAt: now},
		{ID: "attempt2", QuizID: "quiz1", Score: 1, TotalQuestions: 2, Percentage: 50, AttemptedAt: now.Add(-time.Hour)},
		{ID: "attempt1", QuizID: "quiz2", Score: 0, TotalQuestions: 3, Percentage: 0, AttemptedAt: now.Add(-2 * time.Hour)},
	}
	attemptRepo.On("GetAttemptsByUserID", mock.Anything, "user1", domain.AttemptFilters{}, 10, 0).
		Return(attempts, 3, nil)
	quizRepo.On("GetQuizByID", mock.Anything, "quiz1").Return(&domain.Quiz{ID: "quiz1", Title: "Planets"}, nil).Once()
	quizRepo.On("GetQuizByID", mock.Anything, "quiz2").Return(&domain.Quiz{ID: "quiz2", Title: "Moons"}, nil).Once()

	resp, err := svc.GetUserAttempts(context.Background(), "user1", dto.AttemptFilters{}, dto.Pagination{Limit: 10})

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 3)
	assert.Equal(t, "Planets", resp.Attempts[0].QuizTitle)
	assert.Equal(t, "Planets", resp.Attempts[1].QuizTitle)
	assert.Equal(t, "Moons", resp.Attempts[2].QuizTitle)
	assert.Equal(t, 3, resp.PaginationInfo.TotalItems)
	quizRepo.AssertExpectations(t)
}

func TestUserService_GetUserAttempts_DeletedQuizKeepsRow(t *testing.T) {
	userRepo := new(MockUserRepository)
	attemptRepo := new(MockAttemptRepository)
	quizRepo := new(MockQuizRepository)
	svc := NewUserService(userRepo, attemptRepo, quizRepo)

	attempts := []domain.QuizAttempt{
		{ID: "attempt1", QuizID: "gone", Score: 1, TotalQuestions: 2, Percentage: 50},
	}
	attemptRepo.On("GetAttemptsByUserID", mock.Anything, "user1", domain.AttemptFilters{}, 10, 0).
		Return(attempts, 1, nil)
	quizRepo.On("GetQuizByID", mock.Anything, "gone").Return(nil, nil)

	resp, err := svc.GetUserAttempts(context.Background(), "user1", dto.AttemptFilters{}, dto.Pagination{Limit: 10})

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	assert.Equal(t, "", resp.Attempts[0].QuizTitle)
	assert.Equal(t, 50.0, resp.Attempts[0].Percentage)
}

func TestUserService_GetUserStats(t *testing.T) {
	userRepo := new(MockUserRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewUserService(userRepo, attemptRepo, nil)

	attemptRepo.On("GetUserStats", mock.Anything, "user1").Return(&domain.UserStats{
		TotalAttempts:     4,
		AveragePercentage: 62.5,
		BestPercentage:    100,
	}, nil)

	resp, err := svc.GetUserStats(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalAttempts)
	assert.InDelta(t, 62.5, resp.AveragePercentage, 0.0001)
	assert.InDelta(t, 100.0, resp.BestPercentage, 0.0001)
}
