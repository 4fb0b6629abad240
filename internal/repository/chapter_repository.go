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

type ChapterRepository struct {
	pool *pgxpool.Pool
}

func NewChapterRepository(pool *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{pool: pool}
}

// Create создаёт новую главу в предмете
func (r *ChapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	query := `
		INSERT INTO chapters (subject_id, name, description, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		chapter.SubjectID,
		chapter.Name,
		chapter.Description,
		chapter.Position,
	).Scan(&chapter.ID, &chapter.CreatedAt)

	if err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

// GetByID получает главу по ID
func (r *ChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	query := `
		SELECT id, subject_id, name, description, position, created_at
		FROM chapters
		WHERE id = $1
	`

	var chapter model.Chapter
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.SubjectID,
		&chapter.Name,
		&chapter.Description,
		&chapter.Position,
		&chapter.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chapter by id: %w", err)
	}

	return &chapter, nil
}

// GetBySubjectID получает все главы предмета в порядке следования
func (r *ChapterRepository) GetBySubjectID(ctx context.Context, subjectID uuid.UUID) ([]*model.Chapter, error) {
	query := `
		SELECT id, subject_id, name, description, position, created_at
		FROM chapters
		WHERE subject_id = $1
		ORDER BY position, created_at
	`

	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get chapters by subject: %w", err)
	}
	defer rows.Close()

	var chapters []*model.Chapter
	for rows.Next() {
		var chapter model.Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.SubjectID,
			&chapter.Name,
			&chapter.Description,
			&chapter.Position,
			&chapter.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	return chapters, nil
}
