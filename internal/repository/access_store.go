package repository

import (
	"context"

	"github.com/edunexus/backend/internal/access"
	"github.com/google/uuid"
)

// AccessStore реализует шлюз access.Store поверх репозиториев.
// Резолвер доступа не знает про pgx — только про этот адаптер.
type AccessStore struct {
	classroomRepo     *ClassroomRepository
	subjectRepo       *SubjectRepository
	chapterRepo       *ChapterRepository
	memberRepo        *MemberRepository
	teacherAccessRepo *TeacherAccessRepository
}

func NewAccessStore(
	classroomRepo *ClassroomRepository,
	subjectRepo *SubjectRepository,
	chapterRepo *ChapterRepository,
	memberRepo *MemberRepository,
	teacherAccessRepo *TeacherAccessRepository,
) *AccessStore {
	return &AccessStore{
		classroomRepo:     classroomRepo,
		subjectRepo:       subjectRepo,
		chapterRepo:       chapterRepo,
		memberRepo:        memberRepo,
		teacherAccessRepo: teacherAccessRepo,
	}
}

func (s *AccessStore) GetClassroom(ctx context.Context, id uuid.UUID) (*access.ClassroomInfo, error) {
	classroom, err := s.classroomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, nil
	}
	return &access.ClassroomInfo{CreatorID: classroom.CreatedBy, Code: classroom.Code}, nil
}

func (s *AccessStore) GetSubject(ctx context.Context, id uuid.UUID) (*access.SubjectInfo, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}
	return &access.SubjectInfo{ClassroomID: subject.ClassroomID}, nil
}

func (s *AccessStore) GetChapter(ctx context.Context, id uuid.UUID) (*access.ChapterInfo, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, nil
	}
	return &access.ChapterInfo{SubjectID: chapter.SubjectID}, nil
}

func (s *AccessStore) IsClassroomMember(ctx context.Context, userID, classroomID uuid.UUID) (bool, error) {
	return s.memberRepo.IsMember(ctx, userID, classroomID)
}

func (s *AccessStore) HasTeacherAccess(ctx context.Context, userID, subjectID uuid.UUID) (bool, error) {
	return s.teacherAccessRepo.HasAccess(ctx, userID, subjectID)
}

func (s *AccessStore) HasTeacherAccessInClassroom(ctx context.Context, userID, classroomID uuid.UUID) (bool, error) {
	return s.teacherAccessRepo.HasAccessInClassroom(ctx, userID, classroomID)
}

func (s *AccessStore) ListTeacherAccessSubjects(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	return s.teacherAccessRepo.GetSubjectIDsByTeacher(ctx, teacherID)
}

func (s *AccessStore) ListCreatedSubjects(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	return s.subjectRepo.GetIDsByCreator(ctx, teacherID)
}

func (s *AccessStore) SubjectsClaimedByAnyTeacher(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return s.teacherAccessRepo.SubjectIDsWithAnyAccess(ctx, subjectIDs)
}
