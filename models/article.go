package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article holds the extracted content of one Wikipedia page and, once
// generated, its quiz. The URL is the cache key: one row per page, ever.
type Article struct {
	gorm.Model
	URL      string         `gorm:"uniqueIndex;not null" json:"url"`
	Title    string         `gorm:"not null" json:"title"`
	Summary  string         `gorm:"type:text" json:"summary"`
	Sections datatypes.JSON `gorm:"type:jsonb;not null" json:"sections"`
	Quiz     datatypes.JSON `gorm:"type:jsonb" json:"quiz,omitempty"`
}

// HasQuiz reports whether a quiz has been generated and stored for this
// article. A NULL or empty jsonb column counts as absent.
func (a *Article) HasQuiz() bool {
	return len(a.Quiz) > 0 && string(a.Quiz) != "null"
}

// SectionList decodes the stored jsonb section headings. Rows written by this
// application always decode; on failure an empty list is returned.
func (a *Article) SectionList() []string {
	var sections []string
	if len(a.Sections) > 0 {
		_ = json.Unmarshal(a.Sections, &sections)
	}
	if sections == nil {
		sections = []string{}
	}
	return sections
}

// QuizItems decodes the stored quiz, or nil if none has been generated.
func (a *Article) QuizItems() []QuizItem {
	if !a.HasQuiz() {
		return nil
	}
	var items []QuizItem
	if err := json.Unmarshal(a.Quiz, &items); err != nil {
		return nil
	}
	return items
}
