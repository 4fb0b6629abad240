package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubjectTeacher — назначение вместе с данными учителя для выдачи наружу
type SubjectTeacher struct {
	model.TeacherAccess
	TeacherName  string `json:"teacher_name"`
	TeacherEmail string `json:"teacher_email"`
}

type TeacherAccessService struct {
	teacherAccessRepo *repository.TeacherAccessRepository
	userRepo          *repository.UserRepository
	resolver          *access.Resolver
	logger            *zap.Logger
}

func NewTeacherAccessService(
	teacherAccessRepo *repository.TeacherAccessRepository,
	userRepo *repository.UserRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *TeacherAccessService {
	return &TeacherAccessService{
		teacherAccessRepo: teacherAccessRepo,
		userRepo:          userRepo,
		resolver:          resolver,
		logger:            logger,
	}
}

// Assign назначает учителя на предмет по email. Приглашать может только
// тот, кто сам обладает учительской властью над предметом.
func (s *TeacherAccessService) Assign(ctx context.Context, inviterID, subjectID uuid.UUID, teacherEmail string) (*SubjectTeacher, error) {
	hasAuthority, err := s.resolver.ResolveSubjectTeacherAuthority(ctx, inviterID, subjectID)
	if err != nil {
		return nil, err
	}
	if !hasAuthority {
		return nil, access.ErrDenied
	}

	teacher, err := s.userRepo.GetTeacherByEmail(ctx, teacherEmail)
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher with email %q: %w", teacherEmail, access.ErrNotFound)
	}

	alreadyAssigned, err := s.teacherAccessRepo.HasAccess(ctx, teacher.ID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("check existing access: %w", err)
	}
	if alreadyAssigned {
		return nil, fmt.Errorf("teacher already has access to this subject")
	}

	grant := &model.TeacherAccess{
		SubjectID: subjectID,
		TeacherID: teacher.ID,
	}

	if err := s.teacherAccessRepo.Grant(ctx, grant); err != nil {
		return nil, fmt.Errorf("grant access: %w", err)
	}

	s.logger.Info("Teacher assigned to subject",
		zap.String("subject_id", subjectID.String()),
		zap.String("teacher_id", teacher.ID.String()),
		zap.String("invited_by", inviterID.String()))

	return &SubjectTeacher{
		TeacherAccess: *grant,
		TeacherName:   teacher.Name,
		TeacherEmail:  teacher.Email,
	}, nil
}

// List возвращает всех назначенных на предмет учителей
func (s *TeacherAccessService) List(ctx context.Context, userID, subjectID uuid.UUID) ([]*SubjectTeacher, error) {
	hasAuthority, err := s.resolver.ResolveSubjectTeacherAuthority(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if !hasAuthority {
		return nil, access.ErrDenied
	}

	accessList, err := s.teacherAccessRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list subject teachers: %w", err)
	}

	teachers := make([]*SubjectTeacher, 0, len(accessList))
	for _, grant := range accessList {
		teacher, err := s.userRepo.GetByID(ctx, grant.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("get teacher: %w", err)
		}
		if teacher == nil {
			continue
		}
		teachers = append(teachers, &SubjectTeacher{
			TeacherAccess: *grant,
			TeacherName:   teacher.Name,
			TeacherEmail:  teacher.Email,
		})
	}

	return teachers, nil
}

// Revoke отзывает назначение. Каскадных эффектов на заметки и вопросы нет.
func (s *TeacherAccessService) Revoke(ctx context.Context, userID, accessID uuid.UUID) error {
	grant, err := s.teacherAccessRepo.GetByID(ctx, accessID)
	if err != nil {
		return fmt.Errorf("get access record: %w", err)
	}
	if grant == nil {
		return fmt.Errorf("access record %s: %w", accessID, access.ErrNotFound)
	}

	hasAuthority, err := s.resolver.ResolveSubjectTeacherAuthority(ctx, userID, grant.SubjectID)
	if err != nil {
		return err
	}
	if !hasAuthority {
		return access.ErrDenied
	}

	if err := s.teacherAccessRepo.Revoke(ctx, accessID); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}

	s.logger.Info("Teacher access revoked",
		zap.String("access_id", accessID.String()),
		zap.String("revoked_by", userID.String()))

	return nil
}
