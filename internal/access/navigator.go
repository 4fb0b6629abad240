package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Navigator поднимается по иерархии глава -> предмет -> класс.
// Только чтение, никаких побочных эффектов.
type Navigator struct {
	store Store
}

func NewNavigator(store Store) *Navigator {
	return &Navigator{store: store}
}

// ClassroomOf возвращает ID класса, которому принадлежит предмет
func (n *Navigator) ClassroomOf(ctx context.Context, subjectID uuid.UUID) (uuid.UUID, error) {
	subject, err := n.store.GetSubject(ctx, subjectID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return uuid.Nil, fmt.Errorf("subject %s: %w", subjectID, ErrNotFound)
	}
	return subject.ClassroomID, nil
}

// LocateChapter за один проход возвращает предмет и класс главы.
// Висячая ссылка на любом звене — ErrNotFound, частичный результат
// не возвращается никогда.
func (n *Navigator) LocateChapter(ctx context.Context, chapterID uuid.UUID) (subjectID, classroomID uuid.UUID, err error) {
	chapter, err := n.store.GetChapter(ctx, chapterID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("get chapter: %w", err)
	}
	if chapter == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("chapter %s: %w", chapterID, ErrNotFound)
	}

	classroomID, err = n.ClassroomOf(ctx, chapter.SubjectID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return chapter.SubjectID, classroomID, nil
}
