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
)

type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create создаёт новый вопрос
func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `
		INSERT INTO questions (chapter_id, user_id, title, content, is_private)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		question.ChapterID,
		question.UserID,
		question.Title,
		question.Content,
		question.IsPrivate,
	).Scan(&question.ID, &question.CreatedAt)

	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// GetByID получает вопрос по ID
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	query := `
		SELECT id, chapter_id, user_id, title, content, is_private, answer, answered_by, answered_at, created_at
		FROM questions
		WHERE id = $1
	`

	var question model.Question
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&question.ID,
		&question.ChapterID,
		&question.UserID,
		&question.Title,
		&question.Content,
		&question.IsPrivate,
		&question.Answer,
		&question.AnsweredBy,
		&question.AnsweredAt,
		&question.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get question by id: %w", err)
	}

	return &question, nil
}

// GetByChapterID получает все вопросы главы. Фильтрация видимости
// выполняется вызывающей стороной.
func (r *QuestionRepository) GetByChapterID(ctx context.Context, chapterID uuid.UUID) ([]*model.Question, error) {
	query := `
		SELECT id, chapter_id, user_id, title, content, is_private, answer, answered_by, answered_at, created_at
		FROM questions
		WHERE chapter_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("get questions by chapter: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetByUserID получает все вопросы пользователя по всем главам
func (r *QuestionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Question, error) {
	query := `
		SELECT id, chapter_id, user_id, title, content, is_private, answer, answered_by, answered_at, created_at
		FROM questions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get questions by user: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// SetAnswer записывает ответ учителя на вопрос
func (r *QuestionRepository) SetAnswer(ctx context.Context, questionID uuid.UUID, answer string, answeredBy uuid.UUID, answeredAt time.Time) error {
	query := `
		UPDATE questions
		SET answer = $1, answered_by = $2, answered_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, answer, answeredBy, answeredAt, questionID)
	if err != nil {
		return fmt.Errorf("set answer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("question not found")
	}

	return nil
}

// GetUnanswered получает все неотвеченные вопросы вместе с контекстом
// иерархии для фильтрации в дашборде
func (r *QuestionRepository) GetUnanswered(ctx context.Context) ([]*model.PendingQuestion, error) {
	query := `
		SELECT q.id, q.chapter_id, q.user_id, q.title, q.content, q.is_private, q.answer, q.answered_by, q.answered_at, q.created_at,
		       ch.name, ch.subject_id, s.classroom_id, u.name
		FROM questions q
		INNER JOIN chapters ch ON ch.id = q.chapter_id
		INNER JOIN subjects s ON s.id = ch.subject_id
		INNER JOIN users u ON u.id = q.user_id
		WHERE q.answer IS NULL
		ORDER BY q.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get unanswered questions: %w", err)
	}
	defer rows.Close()

	var pending []*model.PendingQuestion
	for rows.Next() {
		var question model.PendingQuestion
		err := rows.Scan(
			&question.ID,
			&question.ChapterID,
			&question.UserID,
			&question.Title,
			&question.Content,
			&question.IsPrivate,
			&question.Answer,
			&question.AnsweredBy,
			&question.AnsweredAt,
			&question.CreatedAt,
			&question.ChapterName,
			&question.SubjectID,
			&question.ClassroomID,
			&question.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending question: %w", err)
		}
		pending = append(pending, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending questions: %w", err)
	}

	return pending, nil
}

func scanQuestions(rows pgx.Rows) ([]*model.Question, error) {
	var questions []*model.Question
	for rows.Next() {
		var question model.Question
		err := rows.Scan(
			&question.ID,
			&question.ChapterID,
			&question.UserID,
			&question.Title,
			&question.Content,
			&question.IsPrivate,
			&question.Answer,
			&question.AnsweredBy,
			&question.AnsweredAt,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}
