package domain

import (
	"fmt"
	"time"
)

// Answer is a single selectable option of a Question. Position preserves the
// author's display order; IsCorrect marks it as part of the answer key.
type Answer struct {
	ID         string
	QuestionID string
	Text       string
	Position   int
	IsCorrect  bool
}

// Question is one item of a quiz with its ordered options.
type Question struct {
	ID       string
	QuizID   string
	Text     string
	Position int
	Answers  []Answer
}

// CorrectAnswers returns the subset of the question's answers flagged correct,
// in position order.
func (q Question) CorrectAnswers() []Answer {
	var correct []Answer
	for _, a := range q.Answers {
		if a.IsCorrect {
			correct = append(correct, a)
		}
	}
	return correct
}

// IsMultipleChoice reports whether more than one answer is flagged correct.
// Single-answer questions expect exactly one selection; multiple-answer
// questions require the exact correct set.
func (q Question) IsMultipleChoice() bool {
	count := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			count++
			if count > 1 {
				return true
			}
		}
	}
	return false
}

// Quiz is a full quiz definition with its ordered questions.
type Quiz struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Questions   []Question
	// QuestionCount is populated by listings, which do not load questions.
	QuestionCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(ownerID, title, description string) *Quiz {
	now := time.Now()
	return &Quiz{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the authoring invariants: a quiz has a title and at least
// one question, every question has at least two answers, and at least one
// answer per question is flagged correct. The scoring engine relies on these
// being enforced at creation/edit time.
func (q *Quiz) Validate() ValidationErrors {
	var errs ValidationErrors
	if q.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if len(q.Questions) == 0 {
		errs = append(errs, NewMissingFieldError("questions"))
	}
	for i, question := range q.Questions {
		if question.Text == "" {
			errs = append(errs, ValidationError{
				Field:   questionField(i, "text"),
				Message: "is required",
			})
		}
		if len(question.Answers) < 2 {
			errs = append(errs, ValidationError{
				Field:   questionField(i, "answers"),
				Message: "needs at least two answers",
			})
			continue
		}
		hasCorrect := false
		for j, answer := range question.Answers {
			if answer.Text == "" {
				errs = append(errs, ValidationError{
					Field:   answerField(i, j, "text"),
					Message: "is required",
				})
			}
			if answer.IsCorrect {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			errs = append(errs, ValidationError{
				Field:   questionField(i, "answers"),
				Message: "needs at least one correct answer",
			})
		}
	}
	return errs
}

func questionField(i int, name string) string {
	return fmt.Sprintf("questions[%d].%s", i, name)
}

func answerField(i, j int, name string) string {
	return fmt.Sprintf("questions[%d].answers[%d].%s", i, j, name)
}
