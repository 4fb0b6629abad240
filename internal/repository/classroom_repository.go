package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ClassroomRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewClassroomRepository(pool *pgxpool.Pool, logger *zap.Logger) *ClassroomRepository {
	return &ClassroomRepository{
		pool:   pool,
		logger: logger,
	}
}

// Create создаёт новый класс
func (r *ClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	query := `
		INSERT INTO classrooms (name, description, code, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		classroom.Name,
		classroom.Description,
		classroom.Code,
		classroom.CreatedBy,
	).Scan(&classroom.ID, &classroom.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert classroom",
			zap.String("created_by", classroom.CreatedBy.String()),
			zap.String("name", classroom.Name),
			zap.Error(err))
		return fmt.Errorf("create classroom: %w", err)
	}

	r.logger.Info("Classroom created",
		zap.String("classroom_id", classroom.ID.String()),
		zap.String("code", classroom.Code))

	return nil
}

// GetByID получает класс по ID
func (r *ClassroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Classroom, error) {
	query := `
		SELECT id, name, description, code, created_by, created_at
		FROM classrooms
		WHERE id = $1
	`

	var classroom model.Classroom
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Description,
		&classroom.Code,
		&classroom.CreatedBy,
		&classroom.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classroom by id: %w", err)
	}

	return &classroom, nil
}

// GetByCode получает класс по коду присоединения
func (r *ClassroomRepository) GetByCode(ctx context.Context, code string) (*model.Classroom, error) {
	query := `
		SELECT id, name, description, code, created_by, created_at
		FROM classrooms
		WHERE code = $1
	`

	var classroom model.Classroom
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Description,
		&classroom.Code,
		&classroom.CreatedBy,
		&classroom.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classroom by code: %w", err)
	}

	return &classroom, nil
}

// CodeExists проверяет занят ли код присоединения
func (r *ClassroomRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM classrooms WHERE code = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check classroom code: %w", err)
	}

	return exists, nil
}

// GetCreatedBy получает классы, созданные учителем
func (r *ClassroomRepository) GetCreatedBy(ctx context.Context, teacherID uuid.UUID) ([]*model.Classroom, error) {
	query := `
		SELECT id, name, description, code, created_by, created_at
		FROM classrooms
		WHERE created_by = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get created classrooms: %w", err)
	}
	defer rows.Close()

	return scanClassrooms(rows)
}

// GetJoinedBy получает классы, в которых студент состоит
func (r *ClassroomRepository) GetJoinedBy(ctx context.Context, studentID uuid.UUID) ([]*model.Classroom, error) {
	query := `
		SELECT c.id, c.name, c.description, c.code, c.created_by, c.created_at
		FROM classrooms c
		INNER JOIN classroom_members m ON m.classroom_id = c.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get joined classrooms: %w", err)
	}
	defer rows.Close()

	return scanClassrooms(rows)
}

// GetByTeacherAccess получает классы, где учителю назначен хотя бы один предмет
func (r *ClassroomRepository) GetByTeacherAccess(ctx context.Context, teacherID uuid.UUID) ([]*model.Classroom, error) {
	query := `
		SELECT DISTINCT c.id, c.name, c.description, c.code, c.created_by, c.created_at
		FROM classrooms c
		INNER JOIN subjects s ON s.classroom_id = c.id
		INNER JOIN teacher_access ta ON ta.subject_id = s.id
		WHERE ta.teacher_id = $1
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get classrooms by teacher access: %w", err)
	}
	defer rows.Close()

	return scanClassrooms(rows)
}

// Delete удаляет класс, содержимое каскадируется на уровне схемы
func (r *ClassroomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM classrooms WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete classroom: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("classroom not found")
	}

	r.logger.Info("Classroom deleted", zap.String("classroom_id", id.String()))

	return nil
}

func scanClassrooms(rows pgx.Rows) ([]*model.Classroom, error) {
	var classrooms []*model.Classroom
	for rows.Next() {
		var classroom model.Classroom
		err := rows.Scan(
			&classroom.ID,
			&classroom.Name,
			&classroom.Description,
			&classroom.Code,
			&classroom.CreatedBy,
			&classroom.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan classroom: %w", err)
		}
		classrooms = append(classrooms, &classroom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classrooms: %w", err)
	}

	return classrooms, nil
}
