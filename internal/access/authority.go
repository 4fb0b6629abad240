package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Authority решает, обладает ли пользователь властью создателя класса
// или учительской властью над предметом
type Authority struct {
	store Store
	nav   *Navigator
}

func NewAuthority(store Store, nav *Navigator) *Authority {
	return &Authority{store: store, nav: nav}
}

// IsClassroomCreator проверяет, является ли пользователь создателем класса
func (a *Authority) IsClassroomCreator(ctx context.Context, userID, classroomID uuid.UUID) (bool, error) {
	classroom, err := a.store.GetClassroom(ctx, classroomID)
	if err != nil {
		return false, fmt.Errorf("get classroom: %w", err)
	}
	if classroom == nil {
		return false, fmt.Errorf("classroom %s: %w", classroomID, ErrNotFound)
	}
	return classroom.CreatorID == userID, nil
}

// HasSubjectTeacherAuthority проверяет учительскую власть над предметом:
// явная запись teacher_access ИЛИ пользователь — создатель класса предмета.
// Явная запись проверяется первой — это более узкий индексный lookup;
// на результат порядок не влияет, оба условия объединены через OR.
func (a *Authority) HasSubjectTeacherAuthority(ctx context.Context, userID, subjectID uuid.UUID) (bool, error) {
	hasAccess, err := a.store.HasTeacherAccess(ctx, userID, subjectID)
	if err != nil {
		return false, fmt.Errorf("check teacher access: %w", err)
	}
	if hasAccess {
		return true, nil
	}

	classroomID, err := a.nav.ClassroomOf(ctx, subjectID)
	if err != nil {
		return false, err
	}

	return a.IsClassroomCreator(ctx, userID, classroomID)
}
