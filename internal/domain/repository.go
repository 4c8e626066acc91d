package domain

import "context"

// QuizRepository is the persistence port for quiz definitions.
// Implementations return (nil, nil) when a quiz does not exist.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, quizID string) error
	// GetQuizByID loads a quiz with its questions and answers, including
	// correctness flags. Callers decide what may leave the server.
	GetQuizByID(ctx context.Context, quizID string) (*Quiz, error)
	ListQuizzes(ctx context.Context, limit, offset int) ([]Quiz, int, error)
}

// AttemptFilters narrows attempt listings.
type AttemptFilters struct {
	QuizID    string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	SortBy    string // "attempted_at" or "percentage"
	SortOrder string // "ASC" or "DESC"
}

// AttemptRepository is the persistence port for scored attempts.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptByID(ctx context.Context, attemptID string) (*QuizAttempt, error)
	GetAttemptsByUserID(ctx context.Context, userID string, filters AttemptFilters, limit, offset int) ([]QuizAttempt, int, error)
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)
}

// UserRepository is the persistence port for accounts.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
}
