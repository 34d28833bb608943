package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/JerryLinyx/wikiquiz/models"
)

// ErrInvalidQuizResponse is returned when the model's reply is not the
// instructed JSON object or fails quiz validation. Nothing reached through
// this error may be persisted.
var ErrInvalidQuizResponse = errors.New("model did not return a valid quiz")

const quizPromptTemplate = `You are an expert quiz generator.

Using ONLY the information below, generate a quiz.

TITLE:
%s

SUMMARY:
%s

SECTIONS:
%s

RULES:
- Generate 5 to 7 questions
- Each question MUST have:
  - question
  - exactly 4 options
  - correct answer (one of the options)
  - difficulty: easy, medium, or hard
  - short explanation
  - 2-3 related Wikipedia topics
- Do NOT hallucinate facts
- Respond ONLY in valid JSON
- Do NOT include markdown or text outside JSON

JSON FORMAT:
{
  "quiz": [
    {
      "question": "",
      "options": ["", "", "", ""],
      "answer": "",
      "difficulty": "easy|medium|hard",
      "explanation": "",
      "related_topics": ["", ""]
    }
  ]
}`

// QuizGeneratorConfig carries the inference settings resolved from the
// application config.
type QuizGeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// QuizGenerator produces quizzes from extracted article content through an
// OpenAI-compatible chat completion endpoint (Groq in production).
type QuizGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewQuizGenerator(cfg QuizGeneratorConfig) *QuizGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &QuizGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// BuildPrompt renders the generation prompt for one article. Sections are
// joined by ", " as a flat list.
func BuildPrompt(title, summary string, sections []string) string {
	return fmt.Sprintf(quizPromptTemplate, title, summary, strings.Join(sections, ", "))
}

// extractJSON strips a markdown code fence if the model wrapped its reply in
// one despite the instructions. Models routinely do.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		start := 3
		if idx := strings.Index(content[start:], "\n"); idx != -1 {
			start += idx + 1
		}
		if end := strings.Index(content[start:], "```"); end != -1 {
			content = content[start : start+end]
		} else {
			content = content[start:]
		}
	}
	return strings.TrimSpace(content)
}

// Generate runs a single chat completion and returns the validated quiz
// items. There is no retry: one call either yields a conforming quiz or an
// error wrapping ErrInvalidQuizResponse.
func (g *QuizGenerator) Generate(ctx context.Context, title, summary string, sections []string) ([]models.QuizItem, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(title, summary, sections),
			},
		},
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("request quiz completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrInvalidQuizResponse)
	}

	raw := extractJSON(resp.Choices[0].Message.Content)

	var parsed struct {
		Quiz []models.QuizItem `json:"quiz"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizResponse, err)
	}
	if len(parsed.Quiz) == 0 {
		return nil, fmt.Errorf("%w: missing quiz field", ErrInvalidQuizResponse)
	}
	if err := models.ValidateQuizItems(parsed.Quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizResponse, err)
	}
	return parsed.Quiz, nil
}
