package domain

import "context"

// QuestionDraft is an AI-generated multiple-choice question candidate. Drafts
// are returned to the author for review and are never published directly.
type QuestionDraft struct {
	Text    string        `json:"question"`
	Answers []AnswerDraft `json:"answers"`
}

// AnswerDraft is one generated option of a QuestionDraft.
type AnswerDraft struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Validate applies the same well-formedness rules to generated drafts that
// quiz authoring enforces: at least two options, at least one correct.
func (d QuestionDraft) Validate() error {
	if d.Text == "" {
		return NewInvalidInputError("generated question has no text")
	}
	if len(d.Answers) < 2 {
		return NewInvalidInputError("generated question needs at least two answers")
	}
	hasCorrect := false
	for _, a := range d.Answers {
		if a.Text == "" {
			return NewInvalidInputError("generated answer has no text")
		}
		if a.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return NewInvalidInputError("generated question has no correct answer")
	}
	return nil
}

// QuestionGenerationService generates quiz question candidates for a topic.
// Implemented by the langchaingo-backed adapter.
type QuestionGenerationService interface {
	GenerateQuestionCandidates(ctx context.Context, topic string, numQuestions int) ([]QuestionDraft, error)
}
