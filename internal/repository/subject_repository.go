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

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// Create создаёт новый предмет в классе
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (classroom_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		subject.ClassroomID,
		subject.Name,
		subject.Description,
	).Scan(&subject.ID, &subject.CreatedAt)

	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	query := `
		SELECT id, classroom_id, name, description, created_at
		FROM subjects
		WHERE id = $1
	`

	var subject model.Subject
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.ClassroomID,
		&subject.Name,
		&subject.Description,
		&subject.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return &subject, nil
}

// GetByClassroomID получает все предметы класса
func (r *SubjectRepository) GetByClassroomID(ctx context.Context, classroomID uuid.UUID) ([]*model.Subject, error) {
	query := `
		SELECT id, classroom_id, name, description, created_at
		FROM subjects
		WHERE classroom_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("get subjects by classroom: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		var subject model.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.ClassroomID,
			&subject.Name,
			&subject.Description,
			&subject.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}

// GetIDsByCreator получает ID всех предметов в классах, созданных учителем
func (r *SubjectRepository) GetIDsByCreator(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT s.id
		FROM subjects s
		INNER JOIN classrooms c ON c.id = s.classroom_id
		WHERE c.created_by = $1
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get subject ids by creator: %w", err)
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

// Delete удаляет предмет, главы и контент каскадируются на уровне схемы
func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subjects WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject not found")
	}

	return nil
}
