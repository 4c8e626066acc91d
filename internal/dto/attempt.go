package dto

import (
	"encoding/json"
	"quizdeck/internal/domain"
	"time"
)

// AnswerSelection is the submitted selection for one question. Clients send
// either a single answer ID or an array of answer IDs; both normalize to a
// slice, so the scoring engine only ever sees sets.
type AnswerSelection []string

// UnmarshalJSON accepts "a1" as well as ["a1","a2"].
func (s *AnswerSelection) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = AnswerSelection{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = AnswerSelection(many)
	return nil
}

// SubmitAttemptRequest is the request body for scoring a quiz submission.
type SubmitAttemptRequest struct {
	Answers map[string]AnswerSelection `json:"answers"`
}

// ToSubmission converts the request mapping into the domain submission.
func (r SubmitAttemptRequest) ToSubmission() domain.Submission {
	submission := make(domain.Submission, len(r.Answers))
	for questionID, selection := range r.Answers {
		submission[questionID] = []string(selection)
	}
	return submission
}

// ScoredAnswerResponse is one per-question verdict in a score response.
type ScoredAnswerResponse struct {
	QuestionID       string   `json:"question_id"`
	QuestionText     string   `json:"question_text"`
	SubmittedAnswers []string `json:"submitted_answers"`
	CorrectAnswers   []string `json:"correct_answers"`
	IsCorrect        bool     `json:"is_correct"`
	IsMultipleChoice bool     `json:"is_multiple_choice"`
}

// ScoreResultResponse is the aggregate scoring result returned to the client.
// Percentage is unrounded; rounding is a presentation concern.
type ScoreResultResponse struct {
	AttemptID      string                 `json:"attempt_id"`
	QuizID         string                 `json:"quiz_id"`
	Score          int                    `json:"score"`
	TotalQuestions int                    `json:"total_questions"`
	Percentage     float64                `json:"percentage"`
	UserAnswers    []ScoredAnswerResponse `json:"user_answers"`
	AttemptedAt    time.Time              `json:"attempted_at"`
}

// NewScoreResultResponse maps a recorded attempt to the API shape. Answer
// texts of correct answers are only revealed here, after submission.
func NewScoreResultResponse(attempt *domain.QuizAttempt) *ScoreResultResponse {
	details := make([]ScoredAnswerResponse, len(attempt.Details))
	for i, d := range attempt.Details {
		details[i] = ScoredAnswerResponse{
			QuestionID:       d.QuestionID,
			QuestionText:     d.QuestionText,
			SubmittedAnswers: answerTexts(d.SubmittedAnswers),
			CorrectAnswers:   answerTexts(d.CorrectAnswers),
			IsCorrect:        d.IsCorrect,
			IsMultipleChoice: d.IsMultipleChoice,
		}
	}
	return &ScoreResultResponse{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		UserAnswers:    details,
		AttemptedAt:    attempt.AttemptedAt,
	}
}

func answerTexts(answers []domain.Answer) []string {
	texts := make([]string, len(answers))
	for i, a := range answers {
		texts[i] = a.Text
	}
	return texts
}

// AttemptFilters narrows attempt listings; bound from query parameters.
type AttemptFilters struct {
	QuizID    string `query:"quiz_id"`
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
	SortBy    string `query:"sort_by"`    // "attempted_at" or "percentage"
	SortOrder string `query:"sort_order"` // "ASC" or "DESC"
}

// ToDomain maps the query DTO onto the repository filter type.
func (f AttemptFilters) ToDomain() domain.AttemptFilters {
	return domain.AttemptFilters{
		QuizID:    f.QuizID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
}

// AttemptItem is one row of an attempt history listing.
type AttemptItem struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// AttemptListResponse is the response for listing a user's attempts.
type AttemptListResponse struct {
	Attempts       []AttemptItem  `json:"attempts"`
	PaginationInfo PaginationInfo `json:"pagination_info"`
}

// UserStatsResponse summarizes a user's attempt history.
type UserStatsResponse struct {
	TotalAttempts     int     `json:"total_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	BestPercentage    float64 `json:"best_percentage"`
}
