package domain

import "time"

// User represents an authenticated account. Accounts are created on first
// Google OAuth login; provider tokens are stored encrypted at rest.
type User struct {
	ID                    string
	GoogleID              string
	Email                 string
	Name                  string
	ProfilePictureURL     string
	EncryptedAccessToken  string
	EncryptedRefreshToken string
	TokenExpiresAt        time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

// QuizAttempt is one scored submission of a quiz by a user. The submission
// and the per-question details are persisted alongside the aggregate so the
// result can be re-displayed without re-scoring.
type QuizAttempt struct {
	ID             string
	UserID         string
	QuizID         string
	Submission     Submission
	Score          int
	TotalQuestions int
	Percentage     float64
	Details        []ScoredAnswerDetail
	AttemptedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// UserStats summarizes a user's attempt history.
type UserStats struct {
	TotalAttempts     int
	AveragePercentage float64
	BestPercentage    float64
}
