package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// IsMember проверяет, состоит ли пользователь в классе
func (r *MemberRepository) IsMember(ctx context.Context, userID, classroomID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM classroom_members
			WHERE user_id = $1 AND classroom_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, classroomID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}

	return exists, nil
}

// Add записывает студента в класс. Повторная запись не создаёт дубликата.
func (r *MemberRepository) Add(ctx context.Context, classroomID, userID uuid.UUID) error {
	query := `
		INSERT INTO classroom_members (classroom_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (classroom_id, user_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, classroomID, userID)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

// CountMembers подсчитывает количество студентов в классе
func (r *MemberRepository) CountMembers(ctx context.Context, classroomID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM classroom_members
		WHERE classroom_id = $1
	`

	var count int
	err := r.pool.QueryRow(ctx, query, classroomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}

	return count, nil
}
