package dto

import (
	"quizdeck/internal/domain"
	"time"
)

// AnswerInput is one option of a question in a create/update request.
type AnswerInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionInput is one question of a quiz in a create/update request.
type QuestionInput struct {
	Text    string        `json:"text"`
	Answers []AnswerInput `json:"answers"`
}

// CreateQuizRequest is the request body for creating a quiz.
type CreateQuizRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// UpdateQuizRequest is the request body for replacing a quiz definition.
type UpdateQuizRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// ToDomain converts the request into a domain quiz. IDs and positions are
// assigned by the service layer.
func (r CreateQuizRequest) ToDomain(ownerID string) *domain.Quiz {
	quiz := domain.NewQuiz(ownerID, r.Title, r.Description)
	quiz.Questions = questionsToDomain(r.Questions)
	return quiz
}

func (r UpdateQuizRequest) ToDomain(ownerID string) *domain.Quiz {
	quiz := domain.NewQuiz(ownerID, r.Title, r.Description)
	quiz.Questions = questionsToDomain(r.Questions)
	return quiz
}

func questionsToDomain(inputs []QuestionInput) []domain.Question {
	questions := make([]domain.Question, len(inputs))
	for i, q := range inputs {
		answers := make([]domain.Answer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = domain.Answer{
				Text:      a.Text,
				Position:  j + 1,
				IsCorrect: a.IsCorrect,
			}
		}
		questions[i] = domain.Question{
			Text:     q.Text,
			Position: i + 1,
			Answers:  answers,
		}
	}
	return questions
}

// TakingAnswerResponse is an answer as shown to a participant: no
// correctness flag ever leaves the server before submission.
type TakingAnswerResponse struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// TakingQuestionResponse is a question as shown to a participant.
type TakingQuestionResponse struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Position int                    `json:"position"`
	Multiple bool                   `json:"multiple"`
	Answers  []TakingAnswerResponse `json:"answers"`
}

// QuizTakingResponse is the participant view of a quiz.
type QuizTakingResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	Questions   []TakingQuestionResponse `json:"questions"`
}

// NewQuizTakingResponse strips correctness flags from a quiz definition.
// The multiple flag is kept so the client can render checkboxes vs radios
// without learning how many answers are correct beyond one-vs-many.
func NewQuizTakingResponse(quiz *domain.Quiz) *QuizTakingResponse {
	questions := make([]TakingQuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers := make([]TakingAnswerResponse, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = TakingAnswerResponse{ID: a.ID, Text: a.Text, Position: a.Position}
		}
		questions[i] = TakingQuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Position: q.Position,
			Multiple: q.IsMultipleChoice(),
			Answers:  answers,
		}
	}
	return &QuizTakingResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
	}
}

// FullAnswerResponse is an answer in the owner's editing view.
type FullAnswerResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Position  int    `json:"position"`
	IsCorrect bool   `json:"is_correct"`
}

// FullQuestionResponse is a question in the owner's editing view.
type FullQuestionResponse struct {
	ID       string               `json:"id"`
	Text     string               `json:"text"`
	Position int                  `json:"position"`
	Answers  []FullAnswerResponse `json:"answers"`
}

// QuizFullResponse is the owner's view of a quiz, correctness flags included.
type QuizFullResponse struct {
	ID          string                 `json:"id"`
	OwnerID     string                 `json:"owner_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Questions   []FullQuestionResponse `json:"questions"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewQuizFullResponse maps a domain quiz to the editing view.
func NewQuizFullResponse(quiz *domain.Quiz) *QuizFullResponse {
	questions := make([]FullQuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers := make([]FullAnswerResponse, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = FullAnswerResponse{ID: a.ID, Text: a.Text, Position: a.Position, IsCorrect: a.IsCorrect}
		}
		questions[i] = FullQuestionResponse{ID: q.ID, Text: q.Text, Position: q.Position, Answers: answers}
	}
	return &QuizFullResponse{
		ID:          quiz.ID,
		OwnerID:     quiz.OwnerID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

// QuizSummaryResponse is one row of a quiz listing.
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizListResponse is the response for listing quizzes.
type QuizListResponse struct {
	Quizzes        []QuizSummaryResponse `json:"quizzes"`
	PaginationInfo PaginationInfo        `json:"pagination_info"`
}

// CreateQuizResponse is returned after a quiz is created.
type CreateQuizResponse struct {
	ID string `json:"id"`
}

// GenerateQuestionsRequest asks the AI proxy for question candidates.
type GenerateQuestionsRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

// GeneratedQuestionsResponse carries reviewed-before-publish drafts.
type GeneratedQuestionsResponse struct {
	Topic     string                 `json:"topic"`
	Questions []domain.QuestionDraft `json:"questions"`
}
