package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodULID = "01HZXYJ5M0N4Q8R2S6T9V3W7XA"

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuizID(goodULID))

	errs := v.ValidateQuizID("")
	require.Len(t, errs, 1)
	assert.Equal(t, "quiz_id", errs[0].Field)

	errs = v.ValidateQuizID("not-a-ulid")
	require.Len(t, errs, 1)
	assert.Equal(t, "quiz_id", errs[0].Field)

	// Crockford Base32 excludes I, L, O and U.
	errs = v.ValidateQuizID("01HZXYJ5M0N4Q8R2S6T9V3W7XI")
	assert.Len(t, errs, 1)
}

func TestValidateSubmission(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSubmission(map[string][]string{
		goodULID: {goodULID},
	}))

	errs := v.ValidateSubmission(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "answers", errs[0].Field)

	errs = v.ValidateSubmission(map[string][]string{"bad": {goodULID}})
	assert.Len(t, errs, 1)

	errs = v.ValidateSubmission(map[string][]string{goodULID: {"bad", "worse"}})
	assert.Len(t, errs, 2)
}

func TestNormalizePagination(t *testing.T) {
	v := NewValidator()

	limit, offset := v.NormalizePagination(0, -5)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = v.NormalizePagination(500, 20)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 20, offset)

	limit, offset = v.NormalizePagination(25, 50)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)
}
