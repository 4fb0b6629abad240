package access

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Grant — какое именно основание дало доступ к классу.
// Сводится к bool через Allowed(), но само основание сохраняется
// для аудита и отладки.
type Grant int

const (
	GrantNone Grant = iota
	GrantMember
	GrantCreator
	GrantSubjectTeacher
)

// Allowed сводит основание к решению "доступ есть/нет"
func (g Grant) Allowed() bool {
	return g != GrantNone
}

func (g Grant) String() string {
	switch g {
	case GrantMember:
		return "member"
	case GrantCreator:
		return "creator"
	case GrantSubjectTeacher:
		return "subject_teacher"
	default:
		return "none"
	}
}

// Decision — структурированный результат проверки доступа к главе.
// При Allowed == false остальные поля не определены, обращаться к ним нельзя.
type Decision struct {
	Allowed          bool      `json:"allowed"`
	ClassroomID      uuid.UUID `json:"classroom_id"`
	SubjectID        uuid.UUID `json:"subject_id"`
	IsSubjectTeacher bool      `json:"is_subject_teacher"`
}

// Resolver отвечает на вопрос "может ли пользователь U действовать над узлом N"
// для классов, предметов и глав.
//
// Все проверки — независимые чтения без общего снапшота: teacher_access,
// отозванный между проверкой явной записи и fallback'ом на создателя, может
// дать решение по уже устаревшему состоянию. Это осознанный компромисс —
// грант, появившийся посреди запроса, только помогает (условия объединены
// через OR), а линеаризуемые мультитабличные транзакции здесь не нужны.
type Resolver struct {
	store  Store
	nav    *Navigator
	auth   *Authority
	logger *zap.Logger
}

func NewResolver(store Store, logger *zap.Logger) *Resolver {
	nav := NewNavigator(store)
	return &Resolver{
		store:  store,
		nav:    nav,
		auth:   NewAuthority(store, nav),
		logger: logger,
	}
}

// Navigator возвращает навигатор по иерархии
func (r *Resolver) Navigator() *Navigator {
	return r.nav
}

// Authority возвращает резолвер учительской власти
func (r *Resolver) Authority() *Authority {
	return r.auth
}

// ResolveClassroomAccess — объединение трёх независимых проверок:
// студент-участник, создатель, назначенный учитель любого предмета класса.
// Достаточно любого совпадения; возвращается первое найденное основание.
func (r *Resolver) ResolveClassroomAccess(ctx context.Context, userID, classroomID uuid.UUID) (Grant, error) {
	isMember, err := r.store.IsClassroomMember(ctx, userID, classroomID)
	if err != nil {
		return GrantNone, fmt.Errorf("check membership: %w", err)
	}
	if isMember {
		return GrantMember, nil
	}

	classroom, err := r.store.GetClassroom(ctx, classroomID)
	if err != nil {
		return GrantNone, fmt.Errorf("get classroom: %w", err)
	}
	if classroom == nil {
		return GrantNone, fmt.Errorf("classroom %s: %w", classroomID, ErrNotFound)
	}
	if classroom.CreatorID == userID {
		return GrantCreator, nil
	}

	hasSubject, err := r.store.HasTeacherAccessInClassroom(ctx, userID, classroomID)
	if err != nil {
		return GrantNone, fmt.Errorf("check teacher access in classroom: %w", err)
	}
	if hasSubject {
		return GrantSubjectTeacher, nil
	}

	return GrantNone, nil
}

// ResolveChapterAccess поднимается от главы к классу и проверяет доступ.
// Учительская власть над предметом вычисляется только для роли teacher —
// для студента этот флаг не имеет смысла, а проверка стоит лишних чтений.
func (r *Resolver) ResolveChapterAccess(ctx context.Context, userID uuid.UUID, role string, chapterID uuid.UUID) (Decision, error) {
	subjectID, classroomID, err := r.nav.LocateChapter(ctx, chapterID)
	if err != nil {
		return Decision{}, err
	}

	grant, err := r.ResolveClassroomAccess(ctx, userID, classroomID)
	if err != nil {
		return Decision{}, err
	}
	if !grant.Allowed() {
		r.logger.Debug("chapter access denied",
			zap.String("user_id", userID.String()),
			zap.String("chapter_id", chapterID.String()))
		return Decision{Allowed: false}, nil
	}

	decision := Decision{
		Allowed:     true,
		ClassroomID: classroomID,
		SubjectID:   subjectID,
	}

	if role == model.RoleTeacher {
		isTeacher, err := r.auth.HasSubjectTeacherAuthority(ctx, userID, subjectID)
		if err != nil {
			return Decision{}, err
		}
		decision.IsSubjectTeacher = isTeacher
	}

	r.logger.Debug("chapter access allowed",
		zap.String("user_id", userID.String()),
		zap.String("chapter_id", chapterID.String()),
		zap.String("grant", grant.String()),
		zap.Bool("is_subject_teacher", decision.IsSubjectTeacher))

	return decision, nil
}

// ResolveSubjectTeacherAuthority — учительская власть над конкретным предметом
func (r *Resolver) ResolveSubjectTeacherAuthority(ctx context.Context, userID, subjectID uuid.UUID) (bool, error) {
	return r.auth.HasSubjectTeacherAuthority(ctx, userID, subjectID)
}
