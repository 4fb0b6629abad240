package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
)

type ChapterService struct {
	chapterRepo *repository.ChapterRepository
	resolver    *access.Resolver
}

func NewChapterService(chapterRepo *repository.ChapterRepository, resolver *access.Resolver) *ChapterService {
	return &ChapterService{
		chapterRepo: chapterRepo,
		resolver:    resolver,
	}
}

// Create создаёт главу в предмете. Требует учительской власти над предметом.
func (s *ChapterService) Create(ctx context.Context, userID, subjectID uuid.UUID, name, description string, position int) (*model.Chapter, error) {
	isTeacher, err := s.resolver.ResolveSubjectTeacherAuthority(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if !isTeacher {
		return nil, access.ErrDenied
	}

	chapter := &model.Chapter{
		SubjectID:   subjectID,
		Name:        name,
		Description: description,
		Position:    position,
	}

	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}

	return chapter, nil
}

// List возвращает главы предмета, если у пользователя есть доступ к классу
func (s *ChapterService) List(ctx context.Context, user *model.User, subjectID uuid.UUID) ([]*model.Chapter, error) {
	classroomID, err := s.resolver.Navigator().ClassroomOf(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	grant, err := s.resolver.ResolveClassroomAccess(ctx, user.ID, classroomID)
	if err != nil {
		return nil, err
	}
	if !grant.Allowed() {
		return nil, access.ErrDenied
	}

	chapters, err := s.chapterRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, nil
}

// Get возвращает главу вместе с решением о доступе к ней
func (s *ChapterService) Get(ctx context.Context, user *model.User, chapterID uuid.UUID) (*model.Chapter, access.Decision, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, access.Decision{}, err
	}
	if !decision.Allowed {
		return nil, access.Decision{}, access.ErrDenied
	}

	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, access.Decision{}, fmt.Errorf("get chapter: %w", err)
	}
	if chapter == nil {
		return nil, access.Decision{}, fmt.Errorf("chapter %s: %w", chapterID, access.ErrNotFound)
	}

	return chapter, decision, nil
}
