package service

import (
	"context"
	"fmt"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

// UserService serves profile and attempt history reads.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GetUserAttempts(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptListResponse, error)
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
}

type userServiceImpl struct {
	userRepo    domain.UserRepository
	attemptRepo domain.AttemptRepository
	quizRepo    domain.QuizRepository
}

// NewUserService creates a new instance of userServiceImpl.
func NewUserService(userRepo domain.UserRepository, attemptRepo domain.AttemptRepository, quizRepo domain.QuizRepository) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
	}
}

// GetUserProfile returns the profile of the authenticated user.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load user %s", userID), err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user not found: %s", userID))
	}
	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}

// GetUserAttempts lists the user's attempt history with quiz titles resolved.
func (s *userServiceImpl) GetUserAttempts(ctx context.Context, userID string, filters dto.AttemptFilters, pagination dto.Pagination) (*dto.AttemptListResponse, error) {
	attempts, total, err := s.attemptRepo.GetAttemptsByUserID(ctx, userID, filters.ToDomain(), pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to list attempts for user %s", userID), err)
	}

	// Quiz titles are resolved once per distinct quiz on the page. A deleted
	// quiz leaves the title empty; the attempt row itself stays visible.
	titles := make(map[string]string)
	items := make([]dto.AttemptItem, len(attempts))
	for i, attempt := range attempts {
		title, seen := titles[attempt.QuizID]
		if !seen {
			quiz, quizErr := s.quizRepo.GetQuizByID(ctx, attempt.QuizID)
			if quizErr != nil {
				logger.Get().Warn("Failed to resolve quiz title for attempt listing",
					zap.Error(quizErr), zap.String("quizID", attempt.QuizID))
			} else if quiz != nil {
				title = quiz.Title
			}
			titles[attempt.QuizID] = title
		}
		items[i] = dto.AttemptItem{
			AttemptID:      attempt.ID,
			QuizID:         attempt.QuizID,
			QuizTitle:      title,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Percentage:     attempt.Percentage,
			AttemptedAt:    attempt.AttemptedAt,
		}
	}

	return &dto.AttemptListResponse{
		Attempts:       items,
		PaginationInfo: dto.NewPaginationInfo(pagination.Limit, pagination.Offset, total),
	}, nil
}

// GetUserStats aggregates the user's attempt history.
func (s *userServiceImpl) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	stats, err := s.attemptRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load stats for user %s", userID), err)
	}
	return &dto.UserStatsResponse{
		TotalAttempts:     stats.TotalAttempts,
		AveragePercentage: stats.AveragePercentage,
		BestPercentage:    stats.BestPercentage,
	}, nil
}
