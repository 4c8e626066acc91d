package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx over Oracle.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

const (
	insertQuizQuery = `INSERT INTO quizzes (ID, OWNER_ID, TITLE, DESCRIPTION, CREATED_AT, UPDATED_AT, DELETED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`
	insertQuestionQuery = `INSERT INTO questions (ID, QUIZ_ID, QUESTION_TEXT, POSITION, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6)`
	insertAnswerQuery = `INSERT INTO answers (ID, QUESTION_ID, ANSWER_TEXT, POSITION, IS_CORRECT, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`
)

// CreateQuiz inserts a quiz with its questions and answers in one transaction.
// Missing IDs and positions are assigned here.
func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	_, err = tx.ExecContext(ctx, insertQuizQuery,
		quiz.ID, quiz.OwnerID, quiz.Title, util.StringToNullString(quiz.Description),
		quiz.CreatedAt, quiz.UpdatedAt, sql.NullTime{},
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	if err := insertQuestions(ctx, tx, quiz, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz creation: %w", err)
	}
	return nil
}

func insertQuestions(ctx context.Context, tx *sqlx.Tx, quiz *domain.Quiz, now time.Time) error {
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		if question.ID == "" {
			question.ID = util.NewULID()
		}
		question.QuizID = quiz.ID
		if question.Position == 0 {
			question.Position = i + 1
		}

		_, err := tx.ExecContext(ctx, insertQuestionQuery,
			question.ID, quiz.ID, question.Text, question.Position, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %s: %w", question.ID, err)
		}

		for j := range question.Answers {
			answer := &question.Answers[j]
			if answer.ID == "" {
				answer.ID = util.NewULID()
			}
			answer.QuestionID = question.ID
			if answer.Position == 0 {
				answer.Position = j + 1
			}

			_, err := tx.ExecContext(ctx, insertAnswerQuery,
				answer.ID, question.ID, answer.Text, answer.Position, answer.IsCorrect, now, now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert answer %s: %w", answer.ID, err)
			}
		}
	}
	return nil
}

// UpdateQuiz replaces a quiz definition: the quiz row is updated in place,
// its questions and answers are dropped and re-inserted.
func (r *sqlxQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	quiz.UpdatedAt = now

	res, err := tx.ExecContext(ctx,
		`UPDATE quizzes SET TITLE = :1, DESCRIPTION = :2, UPDATED_AT = :3 WHERE ID = :4 AND DELETED_AT IS NULL`,
		quiz.Title, util.StringToNullString(quiz.Description), now, quiz.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	if rows, errRows := res.RowsAffected(); errRows == nil && rows == 0 {
		return domain.NewQuizNotFoundError(quiz.ID)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM answers WHERE QUESTION_ID IN (SELECT ID FROM questions WHERE QUIZ_ID = :1)`, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to delete answers for quiz %s: %w", quiz.ID, err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM questions WHERE QUIZ_ID = :1`, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to delete questions for quiz %s: %w", quiz.ID, err)
	}

	if err := insertQuestions(ctx, tx, quiz, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz update: %w", err)
	}
	return nil
}

// DeleteQuiz soft-deletes a quiz. Attempts keep referencing the quiz row so
// history stays displayable.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, quizID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quizzes SET DELETED_AT = :1, UPDATED_AT = :2 WHERE ID = :3 AND DELETED_AT IS NULL`,
		time.Now(), time.Now(), quizID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", quizID, err)
	}
	if rows, errRows := res.RowsAffected(); errRows == nil && rows == 0 {
		return domain.NewQuizNotFoundError(quizID)
	}
	return nil
}

// GetQuizByID loads a quiz with its questions and answers, including the
// correctness flags. Returns (nil, nil) when the quiz does not exist.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, quizID string) (*domain.Quiz, error) {
	var quizRow models.Quiz
	err := r.db.GetContext(ctx, &quizRow,
		`SELECT ID, OWNER_ID, TITLE, DESCRIPTION, CREATED_AT, UPDATED_AT, DELETED_AT
		 FROM quizzes WHERE ID = :1 AND DELETED_AT IS NULL`, quizID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}

	var questionRows []models.Question
	err = r.db.SelectContext(ctx, &questionRows,
		`SELECT ID, QUIZ_ID, QUESTION_TEXT, POSITION, CREATED_AT, UPDATED_AT
		 FROM questions WHERE QUIZ_ID = :1 ORDER BY POSITION`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	var answerRows []models.Answer
	err = r.db.SelectContext(ctx, &answerRows,
		`SELECT a.ID, a.QUESTION_ID, a.ANSWER_TEXT, a.POSITION, a.IS_CORRECT, a.CREATED_AT, a.UPDATED_AT
		 FROM answers a JOIN questions q ON a.QUESTION_ID = q.ID
		 WHERE q.QUIZ_ID = :1 ORDER BY a.QUESTION_ID, a.POSITION`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers for quiz %s: %w", quizID, err)
	}

	return assembleQuiz(&quizRow, questionRows, answerRows), nil
}

func assembleQuiz(quizRow *models.Quiz, questionRows []models.Question, answerRows []models.Answer) *domain.Quiz {
	answersByQuestion := make(map[string][]domain.Answer, len(questionRows))
	for _, a := range answerRows {
		answersByQuestion[a.QuestionID] = append(answersByQuestion[a.QuestionID], domain.Answer{
			ID:         a.ID,
			QuestionID: a.QuestionID,
			Text:       a.AnswerText,
			Position:   a.Position,
			IsCorrect:  a.IsCorrect,
		})
	}

	questions := make([]domain.Question, len(questionRows))
	for i, q := range questionRows {
		questions[i] = domain.Question{
			ID:       q.ID,
			QuizID:   q.QuizID,
			Text:     q.QuestionText,
			Position: q.Position,
			Answers:  answersByQuestion[q.ID],
		}
	}

	return &domain.Quiz{
		ID:          quizRow.ID,
		OwnerID:     quizRow.OwnerID,
		Title:       quizRow.Title,
		Description: quizRow.Description.String,
		Questions:   questions,
		CreatedAt:   quizRow.CreatedAt,
		UpdatedAt:   quizRow.UpdatedAt,
	}
}

// ListQuizzes returns a page of quizzes with their question counts, newest
// first, plus the total number of quizzes.
func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context, limit, offset int) ([]domain.Quiz, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	// Oracle compatibility: ROW_NUMBER() pagination with positional parameters.
	// The question count rides along as a correlated subquery so the page
	// costs a single round trip.
	query := fmt.Sprintf(`SELECT * FROM (
		SELECT q.ID, q.OWNER_ID, q.TITLE, q.DESCRIPTION, q.CREATED_AT, q.UPDATED_AT, q.DELETED_AT,
		       (SELECT COUNT(*) FROM questions qs WHERE qs.QUIZ_ID = q.ID) as QUESTION_COUNT,
		       ROW_NUMBER() OVER (ORDER BY q.CREATED_AT DESC) as rn
		FROM quizzes q WHERE q.DELETED_AT IS NULL
	) WHERE rn > %d AND rn <= %d`, offset, offset+limit)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var qr models.Quiz
		var questionCount, rn int
		if err := rows.Scan(&qr.ID, &qr.OwnerID, &qr.Title, &qr.Description,
			&qr.CreatedAt, &qr.UpdatedAt, &qr.DeletedAt, &questionCount, &rn); err != nil {
			return nil, 0, fmt.Errorf("failed to scan quiz row: %w", err)
		}
		quizzes = append(quizzes, domain.Quiz{
			ID:            qr.ID,
			OwnerID:       qr.OwnerID,
			Title:         qr.Title,
			Description:   qr.Description.String,
			QuestionCount: questionCount,
			CreatedAt:     qr.CreatedAt,
			UpdatedAt:     qr.UpdatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate quiz rows: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quizzes WHERE DELETED_AT IS NULL`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	return quizzes, total, nil
}
