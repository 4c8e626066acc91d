package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/domain"
)

// User represents a row of the users table.
type User struct {
	ID                    string         `db:"ID"` // ULID
	GoogleID              string         `db:"GOOGLE_ID"`
	Email                 string         `db:"EMAIL"`
	Name                  sql.NullString `db:"NAME"`
	ProfilePictureURL     sql.NullString `db:"PROFILE_PICTURE_URL"`
	EncryptedAccessToken  sql.NullString `db:"ENCRYPTED_ACCESS_TOKEN"`
	EncryptedRefreshToken sql.NullString `db:"ENCRYPTED_REFRESH_TOKEN"`
	TokenExpiresAt        sql.NullTime   `db:"TOKEN_EXPIRES_AT"`
	CreatedAt             time.Time      `db:"CREATED_AT"`
	UpdatedAt             time.Time      `db:"UPDATED_AT"`
	DeletedAt             sql.NullTime   `db:"DELETED_AT"`
}

// Quiz represents a row of the quizzes table.
type Quiz struct {
	ID          string         `db:"ID"` // ULID
	OwnerID     string         `db:"OWNER_ID"`
	Title       string         `db:"TITLE"`
	Description sql.NullString `db:"DESCRIPTION"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
	DeletedAt   sql.NullTime   `db:"DELETED_AT"`
}

// Question represents a row of the questions table.
type Question struct {
	ID           string    `db:"ID"` // ULID
	QuizID       string    `db:"QUIZ_ID"`
	QuestionText string    `db:"QUESTION_TEXT"`
	Position     int       `db:"POSITION"`
	CreatedAt    time.Time `db:"CREATED_AT"`
	UpdatedAt    time.Time `db:"UPDATED_AT"`
}

// Answer represents a row of the answers table.
type Answer struct {
	ID         string    `db:"ID"` // ULID
	QuestionID string    `db:"QUESTION_ID"`
	AnswerText string    `db:"ANSWER_TEXT"`
	Position   int       `db:"POSITION"`
	IsCorrect  bool      `db:"IS_CORRECT"`
	CreatedAt  time.Time `db:"CREATED_AT"`
	UpdatedAt  time.Time `db:"UPDATED_AT"`
}

// QuizAttempt represents a row of the quiz_attempts table. The submission
// and the scored details are stored as JSON in CLOB columns.
type QuizAttempt struct {
	ID             string         `db:"ID"` // ULID
	UserID         string         `db:"USER_ID"`
	QuizID         string         `db:"QUIZ_ID"`
	Submission     SubmissionJSON `db:"SUBMISSION"`
	Score          int            `db:"SCORE"`
	TotalQuestions int            `db:"TOTAL_QUESTIONS"`
	Percentage     float64        `db:"PERCENTAGE"`
	Details        DetailsJSON    `db:"DETAILS"`
	AttemptedAt    time.Time      `db:"ATTEMPTED_AT"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
	UpdatedAt      time.Time      `db:"UPDATED_AT"`
	DeletedAt      sql.NullTime   `db:"DELETED_AT"`
}

// SubmissionJSON stores a domain.Submission as a JSON object string.
type SubmissionJSON domain.Submission

// Value implements the driver.Valuer interface
func (s SubmissionJSON) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *SubmissionJSON) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("SubmissionJSON: %w", err)
	}
	if bytesToParse == nil {
		*s = SubmissionJSON{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// DetailsJSON stores the per-question verdicts of an attempt as a JSON array.
type DetailsJSON []domain.ScoredAnswerDetail

// Value implements the driver.Valuer interface
func (d DetailsJSON) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *DetailsJSON) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("DetailsJSON: %w", err)
	}
	if bytesToParse == nil {
		*d = DetailsJSON{}
		return nil
	}
	return json.Unmarshal(bytesToParse, d)
}

// jsonColumnBytes normalizes driver values for JSON CLOB columns. NULL, the
// empty string, and a literal "null" all read back as an empty value.
func jsonColumnBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
