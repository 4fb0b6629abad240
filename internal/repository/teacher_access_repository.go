package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherAccessRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherAccessRepository(pool *pgxpool.Pool) *TeacherAccessRepository {
	return &TeacherAccessRepository{pool: pool}
}

// HasAccess проверяет, есть ли у учителя явное назначение на предмет
func (r *TeacherAccessRepository) HasAccess(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM teacher_access
			WHERE teacher_id = $1 AND subject_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, teacherID, subjectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check teacher access: %w", err)
	}

	return exists, nil
}

// HasAccessInClassroom проверяет, назначен ли учитель хотя бы на один предмет класса
func (r *TeacherAccessRepository) HasAccessInClassroom(ctx context.Context, teacherID, classroomID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM teacher_access ta
			INNER JOIN subjects s ON s.id = ta.subject_id
			WHERE ta.teacher_id = $1 AND s.classroom_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, teacherID, classroomID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check teacher access in classroom: %w", err)
	}

	return exists, nil
}

// Grant назначает учителя на предмет
func (r *TeacherAccessRepository) Grant(ctx context.Context, access *model.TeacherAccess) error {
	query := `
		INSERT INTO teacher_access (subject_id, teacher_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, access.SubjectID, access.TeacherID).
		Scan(&access.ID, &access.CreatedAt)
	if err != nil {
		return fmt.Errorf("grant teacher access: %w", err)
	}

	return nil
}

// GetByID получает запись назначения по ID
func (r *TeacherAccessRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TeacherAccess, error) {
	query := `
		SELECT id, subject_id, teacher_id, created_at
		FROM teacher_access
		WHERE id = $1
	`

	var access model.TeacherAccess
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&access.ID,
		&access.SubjectID,
		&access.TeacherID,
		&access.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher access by id: %w", err)
	}

	return &access, nil
}

// Revoke удаляет назначение учителя
func (r *TeacherAccessRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teacher_access WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("revoke teacher access: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("access record not found")
	}

	return nil
}

// GetBySubjectID получает все назначения на предмет
func (r *TeacherAccessRepository) GetBySubjectID(ctx context.Context, subjectID uuid.UUID) ([]*model.TeacherAccess, error) {
	query := `
		SELECT id, subject_id, teacher_id, created_at
		FROM teacher_access
		WHERE subject_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get teacher access by subject: %w", err)
	}
	defer rows.Close()

	var accessList []*model.TeacherAccess
	for rows.Next() {
		var access model.TeacherAccess
		err := rows.Scan(
			&access.ID,
			&access.SubjectID,
			&access.TeacherID,
			&access.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan teacher access: %w", err)
		}
		accessList = append(accessList, &access)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teacher access: %w", err)
	}

	return accessList, nil
}

// GetSubjectIDsByTeacher получает ID всех предметов, назначенных учителю
func (r *TeacherAccessRepository) GetSubjectIDsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT subject_id
		FROM teacher_access
		WHERE teacher_id = $1
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get subject ids by teacher: %w", err)
	}
	defer rows.Close()

	var subjectIDs []uuid.UUID
	for rows.Next() {
		var subjectID uuid.UUID
		if err := rows.Scan(&subjectID); err != nil {
			return nil, fmt.Errorf("scan subject id: %w", err)
		}
		subjectIDs = append(subjectIDs, subjectID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subject ids: %w", err)
	}

	return subjectIDs, nil
}

// SubjectIDsWithAnyAccess возвращает подмножество переданных предметов,
// на которые назначен хотя бы один учитель. Один батчевый запрос.
func (r *TeacherAccessRepository) SubjectIDsWithAnyAccess(ctx context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	claimed := make(map[uuid.UUID]struct{})
	if len(subjectIDs) == 0 {
		return claimed, nil
	}

	query := `
		SELECT DISTINCT subject_id
		FROM teacher_access
		WHERE subject_id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("get claimed subject ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var subjectID uuid.UUID
		if err := rows.Scan(&subjectID); err != nil {
			return nil, fmt.Errorf("scan claimed subject id: %w", err)
		}
		claimed[subjectID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claimed subject ids: %w", err)
	}

	return claimed, nil
}
