package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassroomService struct {
	classroomRepo *repository.ClassroomRepository
	memberRepo    *repository.MemberRepository
	resolver      *access.Resolver
	logger        *zap.Logger
}

func NewClassroomService(
	classroomRepo *repository.ClassroomRepository,
	memberRepo *repository.MemberRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *ClassroomService {
	return &ClassroomService{
		classroomRepo: classroomRepo,
		memberRepo:    memberRepo,
		resolver:      resolver,
		logger:        logger,
	}
}

// Create создаёт новый класс с уникальным кодом присоединения
func (s *ClassroomService) Create(ctx context.Context, creatorID uuid.UUID, name, description string) (*model.Classroom, error) {
	code, err := s.generateJoinCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate join code: %w", err)
	}

	classroom := &model.Classroom{
		Name:        name,
		Description: description,
		Code:        code,
		CreatedBy:   creatorID,
	}

	if err := s.classroomRepo.Create(ctx, classroom); err != nil {
		return nil, fmt.Errorf("create classroom: %w", err)
	}

	return classroom, nil
}

// Join записывает студента в класс по коду присоединения
func (s *ClassroomService) Join(ctx context.Context, studentID uuid.UUID, code string) (*model.Classroom, error) {
	classroom, err := s.classroomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get classroom by code: %w", err)
	}
	if classroom == nil {
		return nil, fmt.Errorf("classroom code %q: %w", code, access.ErrNotFound)
	}

	isMember, err := s.memberRepo.IsMember(ctx, studentID, classroom.ID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if isMember {
		return nil, fmt.Errorf("already a member of this classroom")
	}

	if err := s.memberRepo.Add(ctx, classroom.ID, studentID); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.logger.Info("Student joined classroom",
		zap.String("student_id", studentID.String()),
		zap.String("classroom_id", classroom.ID.String()))

	return classroom, nil
}

// List возвращает классы пользователя: студенту — где он состоит,
// учителю — созданные плюс те, где ему назначен предмет (без дубликатов)
func (s *ClassroomService) List(ctx context.Context, user *model.User) ([]*model.Classroom, error) {
	if user.IsStudent() {
		classrooms, err := s.classroomRepo.GetJoinedBy(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("get joined classrooms: %w", err)
		}
		return classrooms, nil
	}

	created, err := s.classroomRepo.GetCreatedBy(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get created classrooms: %w", err)
	}

	accessed, err := s.classroomRepo.GetByTeacherAccess(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get accessed classrooms: %w", err)
	}

	// Объединяем и удаляем дубликаты, созданные идут первыми
	seen := make(map[uuid.UUID]struct{}, len(created))
	classrooms := make([]*model.Classroom, 0, len(created)+len(accessed))
	for _, classroom := range created {
		seen[classroom.ID] = struct{}{}
		classrooms = append(classrooms, classroom)
	}
	for _, classroom := range accessed {
		if _, ok := seen[classroom.ID]; !ok {
			classrooms = append(classrooms, classroom)
		}
	}

	return classrooms, nil
}

// Get возвращает класс, если у пользователя есть к нему доступ
func (s *ClassroomService) Get(ctx context.Context, user *model.User, classroomID uuid.UUID) (*model.Classroom, error) {
	grant, err := s.resolver.ResolveClassroomAccess(ctx, user.ID, classroomID)
	if err != nil {
		return nil, err
	}
	if !grant.Allowed() {
		return nil, access.ErrDenied
	}

	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	if classroom == nil {
		return nil, fmt.Errorf("classroom %s: %w", classroomID, access.ErrNotFound)
	}

	return classroom, nil
}

// Delete удаляет класс. Разрешено только создателю; отказ происходит
// до обращения к хранилищу на удаление.
func (s *ClassroomService) Delete(ctx context.Context, userID, classroomID uuid.UUID) error {
	isCreator, err := s.resolver.Authority().IsClassroomCreator(ctx, userID, classroomID)
	if err != nil {
		return err
	}
	if !isCreator {
		return access.ErrDenied
	}

	return s.classroomRepo.Delete(ctx, classroomID)
}

// generateJoinCode генерирует уникальный код присоединения
func (s *ClassroomService) generateJoinCode(ctx context.Context) (string, error) {
	const maxAttempts = 10

	for i := 0; i < maxAttempts; i++ {
		bytes := make([]byte, 4)
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}

		code := strings.ToUpper(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(bytes))
		if len(code) > 6 {
			code = code[:6]
		}

		exists, err := s.classroomRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxAttempts)
}
