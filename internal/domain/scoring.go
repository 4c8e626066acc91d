package domain

import "sort"

// Submission maps a question ID to the answer IDs the participant selected.
// Single-answer questions carry a one-element slice; the DTO layer normalizes
// scalar selections before the engine ever sees them.
type Submission map[string][]string

// UnansweredPolicy controls how questions with no submitted answers are
// reported. Either way they count toward TotalQuestions and never toward
// Score; the policy only decides whether they appear in the detail list.
type UnansweredPolicy string

const (
	// PolicyOmit leaves unanswered questions out of the detail sequence.
	PolicyOmit UnansweredPolicy = "omit"
	// PolicyCountWrong emits an incorrect detail for unanswered questions.
	PolicyCountWrong UnansweredPolicy = "count_wrong"
)

// ParseUnansweredPolicy maps a config string to a policy, defaulting to omit.
func ParseUnansweredPolicy(s string) UnansweredPolicy {
	if s == string(PolicyCountWrong) {
		return PolicyCountWrong
	}
	return PolicyOmit
}

// ScoredAnswerDetail is the per-question verdict of one scoring run.
type ScoredAnswerDetail struct {
	QuestionID       string
	QuestionText     string
	SubmittedAnswers []Answer
	CorrectAnswers   []Answer
	IsCorrect        bool
	IsMultipleChoice bool
}

// ScoreResult aggregates a scoring run: count of correct questions, the
// quiz's total question count (answered or not), the percentage over that
// total, and the per-question details in question order.
type ScoreResult struct {
	Score          int
	TotalQuestions int
	Percentage     float64
	Details        []ScoredAnswerDetail
}

// ScoreSubmission matches a participant's selections against the answer keys
// of the given questions and produces a ScoreResult. It is pure: no I/O, no
// mutation of its inputs, deterministic for given inputs, and it never fails.
//
// Per question, in question order:
//   - selections are resolved against the question's own answers; IDs that
//     do not belong to the question are dropped,
//   - a question with no resolved selections is unanswered and handled per
//     the policy,
//   - a multiple-answer question (more than one answer flagged correct) is
//     correct iff the selected set equals the correct set exactly,
//   - a single-answer question is correct iff exactly one answer was
//     selected and it is flagged correct.
//
// Submission entries for question IDs not present in questions are ignored.
// A question with no correct answers can never be scored correct.
func ScoreSubmission(questions []Question, submission Submission, policy UnansweredPolicy) ScoreResult {
	result := ScoreResult{
		TotalQuestions: len(questions),
		Details:        make([]ScoredAnswerDetail, 0, len(questions)),
	}

	for _, question := range questions {
		correct := question.CorrectAnswers()
		isMultiple := len(correct) > 1

		submitted := resolveSubmitted(question, submission[question.ID])
		if len(submitted) == 0 {
			if policy == PolicyCountWrong {
				result.Details = append(result.Details, ScoredAnswerDetail{
					QuestionID:       question.ID,
					QuestionText:     question.Text,
					SubmittedAnswers: []Answer{},
					CorrectAnswers:   correct,
					IsCorrect:        false,
					IsMultipleChoice: isMultiple,
				})
			}
			continue
		}

		var isCorrect bool
		if isMultiple {
			isCorrect = sameAnswerSet(submitted, correct)
		} else {
			isCorrect = len(submitted) == 1 && submitted[0].IsCorrect
		}

		if isCorrect {
			result.Score++
		}
		result.Details = append(result.Details, ScoredAnswerDetail{
			QuestionID:       question.ID,
			QuestionText:     question.Text,
			SubmittedAnswers: submitted,
			CorrectAnswers:   correct,
			IsCorrect:        isCorrect,
			IsMultipleChoice: isMultiple,
		})
	}

	if result.TotalQuestions > 0 {
		result.Percentage = float64(result.Score) / float64(result.TotalQuestions) * 100
	}
	return result
}

// resolveSubmitted maps selected answer IDs back to the question's answers,
// preserving the question's answer order and dropping unknown or duplicate IDs.
func resolveSubmitted(question Question, selectedIDs []string) []Answer {
	if len(selectedIDs) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = struct{}{}
	}
	var submitted []Answer
	for _, a := range question.Answers {
		if _, ok := wanted[a.ID]; ok {
			submitted = append(submitted, a)
		}
	}
	return submitted
}

// sameAnswerSet reports whether two answer slices contain exactly the same
// answer IDs, regardless of order.
func sameAnswerSet(a, b []Answer) bool {
	if len(a) != len(b) {
		return false
	}
	aIDs := answerIDs(a)
	bIDs := answerIDs(b)
	sort.Strings(aIDs)
	sort.Strings(bIDs)
	for i := range aIDs {
		if aIDs[i] != bIDs[i] {
			return false
		}
	}
	return true
}

func answerIDs(answers []Answer) []string {
	ids := make([]string, len(answers))
	for i, a := range answers {
		ids[i] = a.ID
	}
	return ids
}
