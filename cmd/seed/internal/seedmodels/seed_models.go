// Package seedmodels defines the JSON shapes of the demo seed file.
package seedmodels

// SeedQuiz is a quiz definition as it appears in the seed file.
type SeedQuiz struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []SeedQuestion `json:"questions"`
}

type SeedQuestion struct {
	Text    string       `json:"text"`
	Answers []SeedAnswer `json:"answers"`
}

type SeedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}
