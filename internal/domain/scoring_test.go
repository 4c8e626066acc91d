package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleChoiceQuestion() Question {
	return Question{
		ID:     "q1",
		QuizID: "quiz1",
		Text:   "Which planet is known as the red planet?",
		Answers: []Answer{
			{ID: "a1", QuestionID: "q1", Text: "Mars", Position: 1, IsCorrect: true},
			{ID: "a2", QuestionID: "q1", Text: "Venus", Position: 2, IsCorrect: false},
		},
	}
}

func multipleChoiceQuestion() Question {
	return Question{
		ID:     "q2",
		QuizID: "quiz1",
		Text:   "Which of these are prime numbers?",
		Answers: []Answer{
			{ID: "b1", QuestionID: "q2", Text: "2", Position: 1, IsCorrect: true},
			{ID: "b2", QuestionID: "q2", Text: "3", Position: 2, IsCorrect: true},
			{ID: "b3", QuestionID: "q2", Text: "4", Position: 3, IsCorrect: false},
		},
	}
}

func TestScoreSubmission_SingleChoiceCorrect(t *testing.T) {
	questions := []Question{singleChoiceQuestion()}
	submission := Submission{"q1": {"a1"}}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Equal(t, 100.0, result.Percentage)
	require.Len(t, result.Details, 1)
	assert.True(t, result.Details[0].IsCorrect)
	assert.False(t, result.Details[0].IsMultipleChoice)
}

func TestScoreSubmission_SingleChoiceWrongAnswer(t *testing.T) {
	questions := []Question{singleChoiceQuestion()}
	submission := Submission{"q1": {"a2"}}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Details, 1)
	assert.False(t, result.Details[0].IsCorrect)
	require.Len(t, result.Details[0].SubmittedAnswers, 1)
	assert.Equal(t, "a2", result.Details[0].SubmittedAnswers[0].ID)
}

func TestScoreSubmission_MultipleChoiceExactMatchRequired(t *testing.T) {
	tests := []struct {
		name      string
		selected  []string
		isCorrect bool
	}{
		{name: "exact correct set", selected: []string{"b1", "b2"}, isCorrect: true},
		{name: "order does not matter", selected: []string{"b2", "b1"}, isCorrect: true},
		{name: "includes an incorrect answer", selected: []string{"b1", "b2", "b3"}, isCorrect: false},
		{name: "partial selection", selected: []string{"b1"}, isCorrect: false},
		{name: "only incorrect answer", selected: []string{"b3"}, isCorrect: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			questions := []Question{multipleChoiceQuestion()}
			submission := Submission{"q2": tc.selected}

			result := ScoreSubmission(questions, submission, PolicyOmit)

			require.Len(t, result.Details, 1)
			assert.Equal(t, tc.isCorrect, result.Details[0].IsCorrect)
			assert.True(t, result.Details[0].IsMultipleChoice)
		})
	}
}

func TestScoreSubmission_UnansweredOmittedFromDetails(t *testing.T) {
	questions := []Question{singleChoiceQuestion(), multipleChoiceQuestion()}
	submission := Submission{"q1": {"a1"}} // q2 unanswered

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50.0, result.Percentage)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "q1", result.Details[0].QuestionID)
}

func TestScoreSubmission_UnansweredCountWrongPolicy(t *testing.T) {
	questions := []Question{singleChoiceQuestion(), multipleChoiceQuestion()}
	submission := Submission{"q1": {"a1"}}

	result := ScoreSubmission(questions, submission, PolicyCountWrong)

	assert.Equal(t, 1, result.Score)
	require.Len(t, result.Details, 2)
	assert.Equal(t, "q2", result.Details[1].QuestionID)
	assert.False(t, result.Details[1].IsCorrect)
	assert.Empty(t, result.Details[1].SubmittedAnswers)
	assert.Len(t, result.Details[1].CorrectAnswers, 2)
}

func TestScoreSubmission_AggregateAllCorrect(t *testing.T) {
	questions := []Question{singleChoiceQuestion(), multipleChoiceQuestion()}
	submission := Submission{
		"q1": {"a1"},
		"q2": {"b1", "b2"},
	}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Len(t, result.Details, 2)
}

func TestScoreSubmission_UnknownQuestionEntriesIgnored(t *testing.T) {
	questions := []Question{singleChoiceQuestion()}
	submission := Submission{
		"q1":      {"a1"},
		"ghost-q": {"x1", "x2"},
	}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Len(t, result.Details, 1)
}

func TestScoreSubmission_UnknownAnswerIDsDropped(t *testing.T) {
	questions := []Question{singleChoiceQuestion()}
	// The only selection does not belong to the question, so it resolves to
	// nothing and the question counts as unanswered.
	submission := Submission{"q1": {"not-an-answer"}}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Details)
}

func TestScoreSubmission_MultipleSelectionsOnSingleChoice(t *testing.T) {
	questions := []Question{singleChoiceQuestion()}
	submission := Submission{"q1": {"a1", "a2"}}

	result := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Details, 1)
	assert.False(t, result.Details[0].IsCorrect)
}

func TestScoreSubmission_NoCorrectAnswersNeverCorrect(t *testing.T) {
	malformed := Question{
		ID:   "q3",
		Text: "Malformed question",
		Answers: []Answer{
			{ID: "c1", QuestionID: "q3", Text: "A", Position: 1},
			{ID: "c2", QuestionID: "q3", Text: "B", Position: 2},
		},
	}
	submission := Submission{"q3": {"c1"}}

	result := ScoreSubmission([]Question{malformed}, submission, PolicyOmit)

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Details, 1)
	assert.False(t, result.Details[0].IsCorrect)
	assert.Empty(t, result.Details[0].CorrectAnswers)
}

func TestScoreSubmission_EmptyQuizPercentageZero(t *testing.T) {
	result := ScoreSubmission(nil, Submission{"q1": {"a1"}}, PolicyOmit)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Empty(t, result.Details)
}

func TestScoreSubmission_Idempotent(t *testing.T) {
	questions := []Question{singleChoiceQuestion(), multipleChoiceQuestion()}
	submission := Submission{"q1": {"a1"}, "q2": {"b1"}}

	first := ScoreSubmission(questions, submission, PolicyOmit)
	second := ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, first, second)
}

func TestScoreSubmission_DoesNotMutateInputs(t *testing.T) {
	questions := []Question{multipleChoiceQuestion()}
	submission := Submission{"q2": {"b2", "b1"}}

	ScoreSubmission(questions, submission, PolicyOmit)

	assert.Equal(t, []string{"b2", "b1"}, submission["q2"])
	assert.Equal(t, multipleChoiceQuestion(), questions[0])
}

func TestScoreSubmission_PercentageBounds(t *testing.T) {
	questions := []Question{singleChoiceQuestion(), multipleChoiceQuestion()}
	submissions := []Submission{
		{},
		{"q1": {"a1"}},
		{"q1": {"a2"}, "q2": {"b3"}},
		{"q1": {"a1"}, "q2": {"b1", "b2"}},
	}

	for _, sub := range submissions {
		result := ScoreSubmission(questions, sub, PolicyOmit)
		assert.GreaterOrEqual(t, result.Percentage, 0.0)
		assert.LessOrEqual(t, result.Percentage, 100.0)
	}
}

func TestParseUnansweredPolicy(t *testing.T) {
	assert.Equal(t, PolicyCountWrong, ParseUnansweredPolicy("count_wrong"))
	assert.Equal(t, PolicyOmit, ParseUnansweredPolicy("omit"))
	assert.Equal(t, PolicyOmit, ParseUnansweredPolicy(""))
	assert.Equal(t, PolicyOmit, ParseUnansweredPolicy("bogus"))
}
