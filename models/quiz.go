package models

import "fmt"

// Quiz size and shape limits. The model is instructed to honor these, but its
// output is validated before anything is persisted.
const (
	MinQuizItems     = 5
	MaxQuizItems     = 7
	QuizOptionCount  = 4
	MinRelatedTopics = 2
	MaxRelatedTopics = 3
)

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// QuizItem is a single multiple-choice question as returned by the model and
// as stored in the article's quiz column.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Answer        string   `json:"answer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
	RelatedTopics []string `json:"related_topics"`
}

// Validate checks a single item against the quiz contract: exactly 4 distinct
// options, the answer among them, a known difficulty label and 2-3 related
// topics.
func (q QuizItem) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question is empty")
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("expected %d options, got %d", QuizOptionCount, len(q.Options))
	}
	seen := make(map[string]bool, QuizOptionCount)
	for _, opt := range q.Options {
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if !seen[q.Answer] {
		return fmt.Errorf("answer %q is not one of the options", q.Answer)
	}
	if !validDifficulties[q.Difficulty] {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if len(q.RelatedTopics) < MinRelatedTopics || len(q.RelatedTopics) > MaxRelatedTopics {
		return fmt.Errorf("expected %d-%d related topics, got %d", MinRelatedTopics, MaxRelatedTopics, len(q.RelatedTopics))
	}
	return nil
}

// ValidateQuizItems checks a full generated quiz. A quiz that fails here is
// rejected as a whole; partial quizzes are never stored.
func ValidateQuizItems(items []QuizItem) error {
	if len(items) < MinQuizItems || len(items) > MaxQuizItems {
		return fmt.Errorf("expected %d-%d quiz items, got %d", MinQuizItems, MaxQuizItems, len(items))
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("quiz item %d: %w", i, err)
		}
	}
	return nil
}
