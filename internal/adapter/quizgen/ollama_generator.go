package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// ollamaGenerator implements domain.QuestionGenerationService against a local
// Ollama server via langchaingo.
type ollamaGenerator struct {
	serverURL string
	model     string
	timeout   time.Duration
}

// NewOllamaGenerator creates a new instance of ollamaGenerator.
func NewOllamaGenerator(cfg config.LLMConfig) domain.QuestionGenerationService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ollamaGenerator{
		serverURL: cfg.ServerURL,
		model:     cfg.Model,
		timeout:   timeout,
	}
}

type generatedPayload struct {
	Questions []domain.QuestionDraft `json:"questions"`
}

// GenerateQuestionCandidates implements domain.QuestionGenerationService.
func (g *ollamaGenerator) GenerateQuestionCandidates(ctx context.Context, topic string, numQuestions int) ([]domain.QuestionDraft, error) {
	l := logger.Get()
	l.Info("Generating question candidates with LLM",
		zap.String("topic", topic),
		zap.Int("numQuestions", numQuestions))

	prompt := fmt.Sprintf(`You are a quiz question writer. Write %d multiple-choice questions about the topic below and respond with ONLY a JSON object in the following format:
{
    "questions": [
        {
            "question": "question text here",
            "answers": [
                {"text": "option text", "is_correct": true},
                {"text": "option text", "is_correct": false}
            ]
        }
    ]
}

Topic: %s

Rules:
1. Each question must have between 2 and 5 answers
2. Each question must have at least one correct answer
3. Questions with more than one correct answer are allowed but should be the minority
4. Keep question and answer texts under 30 words
5. Do not repeat questions`, numQuestions, topic)

	response, err := g.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := parseGeneratedPayload(response)
	if err != nil {
		l.Warn("Failed to parse LLM generation response", zap.Error(err), zap.String("topic", topic))
		return nil, domain.NewLLMServiceError(err)
	}

	return payload.Questions, nil
}

func (g *ollamaGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	httpClient := &http.Client{
		Timeout: g.timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(g.serverURL),
		ollama.WithModel(g.model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		l.Error("Failed to create LLM client", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llm.Call(callCtx, prompt, llms.WithTemperature(0.7))
	if err != nil {
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}
	return response, nil
}

// parseGeneratedPayload strips reasoning markers and code fences before
// decoding the JSON object.
func parseGeneratedPayload(response string) (*generatedPayload, error) {
	responseStr := strings.TrimSpace(response)
	if thinkStart := strings.Index(responseStr, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(responseStr, "</think>"); thinkEnd != -1 {
			responseStr = responseStr[thinkEnd+len("</think>"):]
		}
	}

	responseStr = strings.TrimSpace(responseStr)
	responseStr = strings.TrimPrefix(responseStr, "```json")
	responseStr = strings.TrimPrefix(responseStr, "```")
	responseStr = strings.TrimSuffix(responseStr, "```")
	responseStr = strings.TrimSpace(responseStr)

	// Some models wrap the object in prose; keep the outermost braces only.
	start := strings.Index(responseStr, "{")
	end := strings.LastIndex(responseStr, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in LLM response")
	}
	responseStr = responseStr[start : end+1]

	var payload generatedPayload
	if err := json.Unmarshal([]byte(responseStr), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode LLM response: %w", err)
	}
	return &payload, nil
}
