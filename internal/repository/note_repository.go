package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type NoteRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewNoteRepository(pool *pgxpool.Pool, logger *zap.Logger) *NoteRepository {
	return &NoteRepository{
		pool:   pool,
		logger: logger,
	}
}

// Create создаёт новую заметку
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO notes (chapter_id, title, content, uploaded_by, visibility, approval_status, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		note.ChapterID,
		note.Title,
		note.Content,
		note.UploadedBy,
		note.Visibility,
		note.ApprovalStatus,
		note.ApprovedBy,
		note.ApprovedAt,
	).Scan(&note.ID, &note.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert note",
			zap.String("chapter_id", note.ChapterID.String()),
			zap.String("uploaded_by", note.UploadedBy.String()),
			zap.Error(err))
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID получает заметку по ID
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	query := `
		SELECT id, chapter_id, title, content, uploaded_by, visibility, approval_status, approved_by, approved_at, created_at
		FROM notes
		WHERE id = $1
	`

	var note model.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.ChapterID,
		&note.Title,
		&note.Content,
		&note.UploadedBy,
		&note.Visibility,
		&note.ApprovalStatus,
		&note.ApprovedBy,
		&note.ApprovedAt,
		&note.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

// GetByChapterID получает все заметки главы. Фильтрация видимости
// выполняется вызывающей стороной.
func (r *NoteRepository) GetByChapterID(ctx context.Context, chapterID uuid.UUID) ([]*model.Note, error) {
	query := `
		SELECT id, chapter_id, title, content, uploaded_by, visibility, approval_status, approved_by, approved_at, created_at
		FROM notes
		WHERE chapter_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("get notes by chapter: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		var note model.Note
		err := rows.Scan(
			&note.ID,
			&note.ChapterID,
			&note.Title,
			&note.Content,
			&note.UploadedBy,
			&note.Visibility,
			&note.ApprovalStatus,
			&note.ApprovedBy,
			&note.ApprovedAt,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// UpdateApproval меняет статус модерации заметки. При одобрении
// проставляются модератор и время, при отклонении — сбрасываются.
func (r *NoteRepository) UpdateApproval(ctx context.Context, noteID uuid.UUID, status string, approvedBy *uuid.UUID, approvedAt *time.Time) error {
	query := `
		UPDATE notes
		SET approval_status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, status, approvedBy, approvedAt, noteID)
	if err != nil {
		return fmt.Errorf("update note approval: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note not found")
	}

	r.logger.Info("Note approval updated",
		zap.String("note_id", noteID.String()),
		zap.String("status", status))

	return nil
}

// GetPending получает все заметки на модерации вместе с контекстом
// иерархии для фильтрации в дашборде
func (r *NoteRepository) GetPending(ctx context.Context) ([]*model.PendingNote, error) {
	query := `
		SELECT n.id, n.chapter_id, n.title, n.content, n.uploaded_by, n.visibility, n.approval_status, n.approved_by, n.approved_at, n.created_at,
		       ch.name, ch.subject_id, s.classroom_id, u.name
		FROM notes n
		INNER JOIN chapters ch ON ch.id = n.chapter_id
		INNER JOIN subjects s ON s.id = ch.subject_id
		INNER JOIN users u ON u.id = n.uploaded_by
		WHERE n.approval_status = $1
		ORDER BY n.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, model.NoteStatusPending)
	if err != nil {
		return nil, fmt.Errorf("get pending notes: %w", err)
	}
	defer rows.Close()

	var pending []*model.PendingNote
	for rows.Next() {
		var note model.PendingNote
		err := rows.Scan(
			&note.ID,
			&note.ChapterID,
			&note.Title,
			&note.Content,
			&note.UploadedBy,
			&note.Visibility,
			&note.ApprovalStatus,
			&note.ApprovedBy,
			&note.ApprovedAt,
			&note.CreatedAt,
			&note.ChapterName,
			&note.SubjectID,
			&note.ClassroomID,
			&note.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending note: %w", err)
		}
		pending = append(pending, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending notes: %w", err)
	}

	return pending, nil
}
