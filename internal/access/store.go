package access

import (
	"context"

	"github.com/google/uuid"
)

// ClassroomInfo — минимум данных о классе, нужный резолверу
type ClassroomInfo struct {
	CreatorID uuid.UUID
	Code      string
}

// SubjectInfo — минимум данных о предмете, нужный резолверу
type SubjectInfo struct {
	ClassroomID uuid.UUID
}

// ChapterInfo — минимум данных о главе, нужный резолверу
type ChapterInfo struct {
	SubjectID uuid.UUID
}

// Store — узкий шлюз к хранилищу, единственное, что резолвер знает о БД.
// Get* возвращают (nil, nil) если записи нет; любая другая ошибка означает
// недоступность хранилища.
type Store interface {
	GetClassroom(ctx context.Context, id uuid.UUID) (*ClassroomInfo, error)
	GetSubject(ctx context.Context, id uuid.UUID) (*SubjectInfo, error)
	GetChapter(ctx context.Context, id uuid.UUID) (*ChapterInfo, error)

	IsClassroomMember(ctx context.Context, userID, classroomID uuid.UUID) (bool, error)
	HasTeacherAccess(ctx context.Context, userID, subjectID uuid.UUID) (bool, error)
	HasTeacherAccessInClassroom(ctx context.Context, userID, classroomID uuid.UUID) (bool, error)

	ListTeacherAccessSubjects(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)
	ListCreatedSubjects(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)
	SubjectsClaimedByAnyTeacher(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
}
