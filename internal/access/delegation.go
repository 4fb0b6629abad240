package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Aggregator вычисляет множество предметов, за которые учитель несёт
// ответственность в дашборде. Правило дедупликации делегирования: как только
// у предмета появляется хотя бы один явно назначенный учитель, создатель
// класса перестаёт видеть его pending-элементы — ответственность переходит
// назначенным. Ветка assigned побеждает всегда: создатель, который сам же
// и назначен, видит предмет через неё. Предмет без единого назначения
// всегда остаётся за создателем.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// ResolveDelegatedSubjects возвращает assigned ∪ {created без назначений}.
// Вычисляется один раз на запрос дашборда; проверка "есть ли назначенный
// учитель" — одно батчевое чтение по всем созданным предметам.
func (a *Aggregator) ResolveDelegatedSubjects(ctx context.Context, teacherID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	assigned, err := a.store.ListTeacherAccessSubjects(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list assigned subjects: %w", err)
	}

	created, err := a.store.ListCreatedSubjects(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list created subjects: %w", err)
	}

	claimed := map[uuid.UUID]struct{}{}
	if len(created) > 0 {
		claimed, err = a.store.SubjectsClaimedByAnyTeacher(ctx, created)
		if err != nil {
			return nil, fmt.Errorf("check claimed subjects: %w", err)
		}
	}

	visible := make(map[uuid.UUID]struct{}, len(assigned)+len(created))
	for _, subjectID := range assigned {
		visible[subjectID] = struct{}{}
	}
	for _, subjectID := range created {
		if _, ok := claimed[subjectID]; !ok {
			visible[subjectID] = struct{}{}
		}
	}

	return visible, nil
}
