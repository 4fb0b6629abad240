package access

import (
	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
)

// Чистые предикаты видимости контента. Резолвер только определяет правило;
// выполняется оно здесь в памяти над уже загруженным списком.

// NoteVisible — учитель видит все заметки доступной главы, студент видит
// одобренные публичные плюс собственные в любом статусе
func NoteVisible(role string, viewerID uuid.UUID, note *model.Note) bool {
	if role == model.RoleTeacher {
		return true
	}
	if note.UploadedBy == viewerID {
		return true
	}
	return note.ApprovalStatus == model.NoteStatusApproved && note.Visibility == model.VisibilityPublic
}

// QuestionVisible — учитель видит все вопросы, студент видит публичные
// плюс собственные
func QuestionVisible(role string, viewerID uuid.UUID, question *model.Question) bool {
	if role == model.RoleTeacher {
		return true
	}
	return !question.IsPrivate || question.UserID == viewerID
}

// CommunityQuestionVisible — правило публичной ленты вопросов: только
// отвеченные и публичные, независимо от роли смотрящего
func CommunityQuestionVisible(question *model.Question) bool {
	return !question.IsPrivate && question.IsAnswered()
}

// FilterNotes применяет NoteVisible, сохраняя порядок
func FilterNotes(notes []*model.Note, role string, viewerID uuid.UUID) []*model.Note {
	visible := make([]*model.Note, 0, len(notes))
	for _, note := range notes {
		if NoteVisible(role, viewerID, note) {
			visible = append(visible, note)
		}
	}
	return visible
}

// FilterQuestions применяет QuestionVisible, сохраняя порядок
func FilterQuestions(questions []*model.Question, role string, viewerID uuid.UUID) []*model.Question {
	visible := make([]*model.Question, 0, len(questions))
	for _, question := range questions {
		if QuestionVisible(role, viewerID, question) {
			visible = append(visible, question)
		}
	}
	return visible
}

// FilterCommunityQuestions применяет CommunityQuestionVisible, сохраняя порядок
func FilterCommunityQuestions(questions []*model.Question) []*model.Question {
	visible := make([]*model.Question, 0, len(questions))
	for _, question := range questions {
		if CommunityQuestionVisible(question) {
			visible = append(visible, question)
		}
	}
	return visible
}
