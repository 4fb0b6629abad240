package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	resolver     *access.Resolver
}

func NewQuestionService(questionRepo *repository.QuestionRepository, resolver *access.Resolver) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		resolver:     resolver,
	}
}

// Create создаёт вопрос в главе, публичный или приватный
func (s *QuestionService) Create(ctx context.Context, user *model.User, chapterID uuid.UUID, title, content string, isPrivate bool) (*model.Question, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	question := &model.Question{
		ChapterID: chapterID,
		UserID:    user.ID,
		Title:     title,
		Content:   content,
		IsPrivate: isPrivate,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return question, nil
}

// List возвращает вопросы главы, отфильтрованные по правилам видимости:
// студент видит публичные плюс собственные, учитель — все
func (s *QuestionService) List(ctx context.Context, user *model.User, chapterID uuid.UUID) ([]*model.Question, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	questions, err := s.questionRepo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return access.FilterQuestions(questions, user.Role, user.ID), nil
}

// ListCommunity возвращает публичную ленту главы: только отвеченные
// публичные вопросы, независимо от роли смотрящего
func (s *QuestionService) ListCommunity(ctx context.Context, user *model.User, chapterID uuid.UUID) ([]*model.Question, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	questions, err := s.questionRepo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return access.FilterCommunityQuestions(questions), nil
}

// ListMine возвращает все вопросы пользователя по всем главам
func (s *QuestionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*model.Question, error) {
	questions, err := s.questionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own questions: %w", err)
	}

	return questions, nil
}

// Answer записывает ответ учителя. Требует учительской власти над
// предметом главы вопроса.
func (s *QuestionService) Answer(ctx context.Context, user *model.User, questionID uuid.UUID, content string) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question == nil {
		return nil, fmt.Errorf("question %s: %w", questionID, access.ErrNotFound)
	}

	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, question.ChapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed || !decision.IsSubjectTeacher {
		return nil, access.ErrDenied
	}

	now := time.Now().UTC()
	if err := s.questionRepo.SetAnswer(ctx, questionID, content, user.ID, now); err != nil {
		return nil, fmt.Errorf("set answer: %w", err)
	}

	question.Answer = &content
	question.AnsweredBy = &user.ID
	question.AnsweredAt = &now

	return question, nil
}
