package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() QuizItem {
	return QuizItem{
		Question:      "In which year was the example founded?",
		Options:       []string{"1990", "1995", "2000", "2005"},
		Answer:        "1995",
		Difficulty:    "easy",
		Explanation:   "The summary states it was founded in 1995.",
		RelatedTopics: []string{"History", "Foundations"},
	}
}

func validQuiz(n int) []QuizItem {
	items := make([]QuizItem, n)
	for i := range items {
		items[i] = validItem()
	}
	return items
}

func TestQuizItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QuizItem)
		wantErr string
	}{
		{
			name:   "valid item",
			mutate: func(q *QuizItem) {},
		},
		{
			name:    "empty question",
			mutate:  func(q *QuizItem) { q.Question = "" },
			wantErr: "question is empty",
		},
		{
			name:    "three options",
			mutate:  func(q *QuizItem) { q.Options = q.Options[:3] },
			wantErr: "expected 4 options",
		},
		{
			name:    "five options",
			mutate:  func(q *QuizItem) { q.Options = append(q.Options, "2010") },
			wantErr: "expected 4 options",
		},
		{
			name:    "duplicate options",
			mutate:  func(q *QuizItem) { q.Options[1] = q.Options[0] },
			wantErr: "duplicate option",
		},
		{
			name:    "answer not among options",
			mutate:  func(q *QuizItem) { q.Answer = "1842" },
			wantErr: "not one of the options",
		},
		{
			name:    "unknown difficulty",
			mutate:  func(q *QuizItem) { q.Difficulty = "impossible" },
			wantErr: "invalid difficulty",
		},
		{
			name:    "one related topic",
			mutate:  func(q *QuizItem) { q.RelatedTopics = q.RelatedTopics[:1] },
			wantErr: "related topics",
		},
		{
			name: "four related topics",
			mutate: func(q *QuizItem) {
				q.RelatedTopics = []string{"a", "b", "c", "d"}
			},
			wantErr: "related topics",
		},
		{
			name: "three related topics is fine",
			mutate: func(q *QuizItem) {
				q.RelatedTopics = []string{"a", "b", "c"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)
			err := item.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateQuizItemsCount(t *testing.T) {
	assert.Error(t, ValidateQuizItems(validQuiz(4)))
	assert.NoError(t, ValidateQuizItems(validQuiz(5)))
	assert.NoError(t, ValidateQuizItems(validQuiz(7)))
	assert.Error(t, ValidateQuizItems(validQuiz(8)))
	assert.Error(t, ValidateQuizItems(nil))
}

func TestValidateQuizItemsReportsIndex(t *testing.T) {
	items := validQuiz(5)
	items[3].Answer = "not an option"
	err := ValidateQuizItems(items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiz item 3")
}
