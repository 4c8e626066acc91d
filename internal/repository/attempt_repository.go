package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.QuizAttempt{
		ID:             m.ID,
		UserID:         m.UserID,
		QuizID:         m.QuizID,
		Submission:     domain.Submission(m.Submission),
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Percentage:     m.Percentage,
		Details:        []domain.ScoredAnswerDetail(m.Details),
		AttemptedAt:    m.AttemptedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// CreateAttempt inserts a new scored attempt into the database.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	now := time.Now()
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = now
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	attempt.UpdatedAt = now

	submissionVal, err := models.SubmissionJSON(attempt.Submission).Value()
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	detailsVal, err := models.DetailsJSON(attempt.Details).Value()
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}

	query := `INSERT INTO quiz_attempts (ID, USER_ID, QUIZ_ID, SUBMISSION, SCORE, TOTAL_QUESTIONS, PERCENTAGE, DETAILS, ATTEMPTED_AT, CREATED_AT, UPDATED_AT, DELETED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12)`

	_, err = r.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.QuizID,
		submissionVal,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.Percentage,
		detailsVal,
		attempt.AttemptedAt,
		attempt.CreatedAt,
		attempt.UpdatedAt,
		sql.NullTime{},
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetAttemptByID loads one attempt. Returns (nil, nil) when it does not exist.
func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	var m models.QuizAttempt
	err := r.db.GetContext(ctx, &m,
		`SELECT ID, USER_ID, QUIZ_ID, SUBMISSION, SCORE, TOTAL_QUESTIONS, PERCENTAGE, DETAILS, ATTEMPTED_AT, CREATED_AT, UPDATED_AT, DELETED_AT
		 FROM quiz_attempts WHERE ID = :1 AND DELETED_AT IS NULL`, attemptID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", attemptID, err)
	}
	return toDomainAttempt(&m), nil
}

// buildAttemptsQuery constructs the paged SELECT and the COUNT query for a
// user's attempts. Oracle compatibility: positional parameters and
// ROW_NUMBER() pagination.
func buildAttemptsQuery(userID string, filters domain.AttemptFilters, limit, offset int) (string, string, []interface{}) {
	var args []interface{}
	whereClauses := []string{"qa.deleted_at IS NULL"}
	argIndex := 1

	whereClauses = append(whereClauses, fmt.Sprintf("qa.user_id = :%d", argIndex))
	args = append(args, userID)
	argIndex++

	if filters.QuizID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("qa.quiz_id = :%d", argIndex))
		args = append(args, filters.QuizID)
		argIndex++
	}

	if filters.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("qa.attempted_at >= :%d", argIndex))
		args = append(args, filters.StartDate)
		argIndex++
	}
	if filters.EndDate != "" {
		if parsedEndDate, err := time.Parse("2006-01-02", filters.EndDate); err == nil {
			whereClauses = append(whereClauses, fmt.Sprintf("qa.attempted_at <= :%d", argIndex))
			args = append(args, parsedEndDate.Add(24*time.Hour-time.Nanosecond))
		} else {
			whereClauses = append(whereClauses, fmt.Sprintf("qa.attempted_at <= :%d", argIndex))
			args = append(args, filters.EndDate)
		}
		argIndex++
	}

	queryWhere := "WHERE " + strings.Join(whereClauses, " AND ")

	orderBy := "qa.attempted_at DESC"
	if filters.SortBy != "" {
		allowedSortFields := map[string]string{"attempted_at": "qa.attempted_at", "percentage": "qa.percentage"}
		if dbSortField, ok := allowedSortFields[filters.SortBy]; ok {
			orderBy = dbSortField
			if order := strings.ToUpper(filters.SortOrder); order == "ASC" || order == "DESC" {
				orderBy += " " + order
			} else {
				orderBy += " DESC"
			}
		}
	}

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	innerQuery := fmt.Sprintf(
		"SELECT qa.*, ROW_NUMBER() OVER (ORDER BY %s) as rn FROM quiz_attempts qa %s",
		orderBy, queryWhere)
	resultsQuery := fmt.Sprintf("SELECT * FROM (%s) WHERE rn > %d AND rn <= %d", innerQuery, offset, offset+limit)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quiz_attempts qa %s", queryWhere)

	return resultsQuery, countQuery, args
}

// GetAttemptsByUserID retrieves a paginated list of attempts for a user.
func (r *sqlxAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, filters domain.AttemptFilters, limit, offset int) ([]domain.QuizAttempt, int, error) {
	resultsQuery, countQuery, args := buildAttemptsQuery(userID, filters, limit, offset)

	rows, err := r.db.QueryContext(ctx, resultsQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attempts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var m models.QuizAttempt
		var rn int
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.QuizID,
			&m.Submission,
			&m.Score,
			&m.TotalQuestions,
			&m.Percentage,
			&m.Details,
			&m.AttemptedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.DeletedAt,
			&rn,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attempt row: %w", err)
		}
		attempts = append(attempts, *toDomainAttempt(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attempt rows: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts for user %s: %w", userID, err)
	}

	return attempts, total, nil
}

// GetUserStats aggregates a user's attempt history.
func (r *sqlxAttemptRepository) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	var row struct {
		Total int             `db:"TOTAL"`
		Avg   sql.NullFloat64 `db:"AVG_PCT"`
		Best  sql.NullFloat64 `db:"BEST_PCT"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT COUNT(*) AS TOTAL, AVG(PERCENTAGE) AS AVG_PCT, MAX(PERCENTAGE) AS BEST_PCT
		 FROM quiz_attempts WHERE USER_ID = :1 AND DELETED_AT IS NULL`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for user %s: %w", userID, err)
	}
	return &domain.UserStats{
		TotalAttempts:     row.Total,
		AveragePercentage: row.Avg.Float64,
		BestPercentage:    row.Best.Float64,
	}, nil
}
