package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	resolver    *access.Resolver
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, resolver *access.Resolver) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		resolver:    resolver,
	}
}

// Create создаёт предмет в классе. Разрешено только создателю класса.
func (s *SubjectService) Create(ctx context.Context, userID, classroomID uuid.UUID, name, description string) (*model.Subject, error) {
	isCreator, err := s.resolver.Authority().IsClassroomCreator(ctx, userID, classroomID)
	if err != nil {
		return nil, err
	}
	if !isCreator {
		return nil, access.ErrDenied
	}

	subject := &model.Subject{
		ClassroomID: classroomID,
		Name:        name,
		Description: description,
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	return subject, nil
}

// List возвращает предметы класса, если у пользователя есть доступ к классу
func (s *SubjectService) List(ctx context.Context, user *model.User, classroomID uuid.UUID) ([]*model.Subject, error) {
	grant, err := s.resolver.ResolveClassroomAccess(ctx, user.ID, classroomID)
	if err != nil {
		return nil, err
	}
	if !grant.Allowed() {
		return nil, access.ErrDenied
	}

	subjects, err := s.subjectRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return subjects, nil
}

// Get возвращает предмет, если у пользователя есть доступ к его классу
func (s *SubjectService) Get(ctx context.Context, user *model.User, subjectID uuid.UUID) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return nil, fmt.Errorf("subject %s: %w", subjectID, access.ErrNotFound)
	}

	grant, err := s.resolver.ResolveClassroomAccess(ctx, user.ID, subject.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !grant.Allowed() {
		return nil, access.ErrDenied
	}

	return subject, nil
}

// Delete удаляет предмет. Разрешено только создателю класса; отказ
// происходит до обращения к хранилищу на удаление.
func (s *SubjectService) Delete(ctx context.Context, userID, subjectID uuid.UUID) error {
	classroomID, err := s.resolver.Navigator().ClassroomOf(ctx, subjectID)
	if err != nil {
		return err
	}

	isCreator, err := s.resolver.Authority().IsClassroomCreator(ctx, userID, classroomID)
	if err != nil {
		return err
	}
	if !isCreator {
		return access.ErrDenied
	}

	return s.subjectRepo.Delete(ctx, subjectID)
}
