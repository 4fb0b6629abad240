package model

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID         uuid.UUID  `json:"id"`
	ChapterID  uuid.UUID  `json:"chapter_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsPrivate  bool       `json:"is_private"`
	Answer     *string    `json:"answer"`
	AnsweredBy *uuid.UUID `json:"answered_by"`
	AnsweredAt *time.Time `json:"answered_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsAnswered checks if a teacher already answered the question
func (q *Question) IsAnswered() bool {
	return q.Answer != nil
}

// PendingQuestion — неотвеченный вопрос вместе с контекстом иерархии,
// используется дашбордом учителя
type PendingQuestion struct {
	Question
	ChapterName string    `json:"chapter_name"`
	SubjectID   uuid.UUID `json:"subject_id"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	AuthorName  string    `json:"author_name"`
}
