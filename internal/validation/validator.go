package validation

import (
	"regexp"
	"strings"

	"quizdeck/internal/domain"
)

const (
	maxPageLimit     = 100
	defaultPageLimit = 10
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizID checks the quiz path parameter.
func (v *Validator) ValidateQuizID(quizID string) domain.ValidationErrors {
	return v.validateIDParam("quiz_id", quizID)
}

// ValidateAttemptID checks the attempt path parameter.
func (v *Validator) ValidateAttemptID(attemptID string) domain.ValidationErrors {
	return v.validateIDParam("attempt_id", attemptID)
}

func (v *Validator) validateIDParam(field, value string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(value) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(value) {
		errors = append(errors, domain.NewInvalidFormatError(field, value))
	}
	return errors
}

// ValidateSubmission checks the shape of a scoring request. Unknown question
// and answer IDs are NOT rejected here; the scoring engine ignores them.
func (v *Validator) ValidateSubmission(answers map[string][]string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}
	for questionID, selection := range answers {
		if !isValidULID(questionID) {
			errors = append(errors, domain.NewInvalidFormatError("answers", questionID))
			continue
		}
		for _, answerID := range selection {
			if !isValidULID(answerID) {
				errors = append(errors, domain.NewInvalidFormatError("answers."+questionID, answerID))
			}
		}
	}
	return errors
}

// NormalizePagination clamps limit and offset to sane bounds.
func (v *Validator) NormalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, Crockford Base32 encoded
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
