package repository

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

// Create создаёт объявление в главе
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	query := `
		INSERT INTO announcements (chapter_id, title, content, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		announcement.ChapterID,
		announcement.Title,
		announcement.Content,
		announcement.CreatedBy,
	).Scan(&announcement.ID, &announcement.CreatedAt)

	if err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}

	return nil
}

// GetByChapterID получает все объявления главы, новые первыми
func (r *AnnouncementRepository) GetByChapterID(ctx context.Context, chapterID uuid.UUID) ([]*model.Announcement, error) {
	query := `
		SELECT id, chapter_id, title, content, created_by, created_at
		FROM announcements
		WHERE chapter_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("get announcements by chapter: %w", err)
	}
	defer rows.Close()

	var announcements []*model.Announcement
	for rows.Next() {
		var announcement model.Announcement
		err := rows.Scan(
			&announcement.ID,
			&announcement.ChapterID,
			&announcement.Title,
			&announcement.Content,
			&announcement.CreatedBy,
			&announcement.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, &announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}

	return announcements, nil
}
