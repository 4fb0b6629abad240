package access

import (
	"context"
	"errors"
	"testing"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore — in-memory реализация Store для тестов
type fakeStore struct {
	classrooms    map[uuid.UUID]*ClassroomInfo
	subjects      map[uuid.UUID]*SubjectInfo
	chapters      map[uuid.UUID]*ChapterInfo
	members       map[uuid.UUID][]uuid.UUID // classroomID -> userIDs
	teacherAccess map[uuid.UUID][]uuid.UUID // subjectID -> teacherIDs

	err          error
	claimedCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classrooms:    make(map[uuid.UUID]*ClassroomInfo),
		subjects:      make(map[uuid.UUID]*SubjectInfo),
		chapters:      make(map[uuid.UUID]*ChapterInfo),
		members:       make(map[uuid.UUID][]uuid.UUID),
		teacherAccess: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeStore) GetClassroom(_ context.Context, id uuid.UUID) (*ClassroomInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classrooms[id], nil
}

func (f *fakeStore) GetSubject(_ context.Context, id uuid.UUID) (*SubjectInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subjects[id], nil
}

func (f *fakeStore) GetChapter(_ context.Context, id uuid.UUID) (*ChapterInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chapters[id], nil
}

func (f *fakeStore) IsClassroomMember(_ context.Context, userID, classroomID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.members[classroomID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasTeacherAccess(_ context.Context, userID, subjectID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.teacherAccess[subjectID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasTeacherAccessInClassroom(_ context.Context, userID, classroomID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for subjectID, subject := range f.subjects {
		if subject.ClassroomID != classroomID {
			continue
		}
		for _, id := range f.teacherAccess[subjectID] {
			if id == userID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeStore) ListTeacherAccessSubjects(_ context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []uuid.UUID
	for subjectID, teachers := range f.teacherAccess {
		for _, id := range teachers {
			if id == teacherID {
				result = append(result, subjectID)
			}
		}
	}
	return result, nil
}

func (f *fakeStore) ListCreatedSubjects(_ context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []uuid.UUID
	for subjectID, subject := range f.subjects {
		classroom := f.classrooms[subject.ClassroomID]
		if classroom != nil && classroom.CreatorID == teacherID {
			result = append(result, subjectID)
		}
	}
	return result, nil
}

func (f *fakeStore) SubjectsClaimedByAnyTeacher(_ context.Context, subjectIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	f.claimedCalls++
	if f.err != nil {
		return nil, f.err
	}
	claimed := make(map[uuid.UUID]struct{})
	for _, subjectID := range subjectIDs {
		if len(f.teacherAccess[subjectID]) > 0 {
			claimed[subjectID] = struct{}{}
		}
	}
	return claimed, nil
}

// fixture — класс с предметом и главой, создатель, студент-участник,
// назначенный учитель и посторонний пользователь
type fixture struct {
	store       *fakeStore
	resolver    *Resolver
	classroomID uuid.UUID
	subjectID   uuid.UUID
	chapterID   uuid.UUID
	creatorID   uuid.UUID
	studentID   uuid.UUID
	assignedID  uuid.UUID
	outsiderID  uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:       newFakeStore(),
		classroomID: uuid.New(),
		subjectID:   uuid.New(),
		chapterID:   uuid.New(),
		creatorID:   uuid.New(),
		studentID:   uuid.New(),
		assignedID:  uuid.New(),
		outsiderID:  uuid.New(),
	}
	f.store.classrooms[f.classroomID] = &ClassroomInfo{CreatorID: f.creatorID, Code: "ABC123"}
	f.store.subjects[f.subjectID] = &SubjectInfo{ClassroomID: f.classroomID}
	f.store.chapters[f.chapterID] = &ChapterInfo{SubjectID: f.subjectID}
	f.store.members[f.classroomID] = []uuid.UUID{f.studentID}
	f.store.teacherAccess[f.subjectID] = []uuid.UUID{f.assignedID}
	f.resolver = NewResolver(f.store, zap.NewNop())
	return f
}

func TestResolveClassroomAccessMember(t *testing.T) {
	f := newFixture()

	grant, err := f.resolver.ResolveClassroomAccess(context.Background(), f.studentID, f.classroomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant != GrantMember {
		t.Fatalf("expected GrantMember, got %s", grant)
	}
}

func TestResolveClassroomAccessCreator(t *testing.T) {
	f := newFixture()

	grant, err := f.resolver.ResolveClassroomAccess(context.Background(), f.creatorID, f.classroomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant != GrantCreator {
		t.Fatalf("expected GrantCreator, got %s", grant)
	}
}

func TestResolveClassroomAccessAssignedTeacher(t *testing.T) {
	f := newFixture()

	grant, err := f.resolver.ResolveClassroomAccess(context.Background(), f.assignedID, f.classroomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant != GrantSubjectTeacher {
		t.Fatalf("expected GrantSubjectTeacher, got %s", grant)
	}
}

func TestResolveClassroomAccessOutsider(t *testing.T) {
	f := newFixture()

	grant, err := f.resolver.ResolveClassroomAccess(context.Background(), f.outsiderID, f.classroomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant.Allowed() {
		t.Fatalf("expected no access, got %s", grant)
	}
}

func TestResolveClassroomAccessMissingClassroom(t *testing.T) {
	f := newFixture()

	_, err := f.resolver.ResolveClassroomAccess(context.Background(), f.outsiderID, uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveClassroomAccessStoreErrorNotMaskedAsDenied(t *testing.T) {
	f := newFixture()
	storeErr := errors.New("connection refused")
	f.store.err = storeErr

	_, err := f.resolver.ResolveClassroomAccess(context.Background(), f.studentID, f.classroomID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if IsDenied(err) || IsNotFound(err) {
		t.Fatalf("store error must not look like an access decision: %v", err)
	}
}

func TestResolveChapterAccessStudentMember(t *testing.T) {
	f := newFixture()

	decision, err := f.resolver.ResolveChapterAccess(context.Background(), f.studentID, model.RoleStudent, f.chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected access for classroom member")
	}
	if decision.IsSubjectTeacher {
		t.Fatal("student must never be subject teacher")
	}
	if decision.SubjectID != f.subjectID || decision.ClassroomID != f.classroomID {
		t.Fatalf("wrong hierarchy in decision: %+v", decision)
	}
}

func TestResolveChapterAccessCreatorIsSubjectTeacher(t *testing.T) {
	f := newFixture()

	decision, err := f.resolver.ResolveChapterAccess(context.Background(), f.creatorID, model.RoleTeacher, f.chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed || !decision.IsSubjectTeacher {
		t.Fatalf("creator must have subject teacher authority: %+v", decision)
	}
}

func TestResolveChapterAccessAssignedTeacher(t *testing.T) {
	f := newFixture()

	decision, err := f.resolver.ResolveChapterAccess(context.Background(), f.assignedID, model.RoleTeacher, f.chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed || !decision.IsSubjectTeacher {
		t.Fatalf("assigned teacher must have subject teacher authority: %+v", decision)
	}
}

func TestResolveChapterAccessOutsiderDeniedWithoutError(t *testing.T) {
	f := newFixture()

	decision, err := f.resolver.ResolveChapterAccess(context.Background(), f.outsiderID, model.RoleStudent, f.chapterID)
	if err != nil {
		t.Fatalf("denial is a decision, not an error: %v", err)
	}
	if decision.Allowed {
		t.Fatal("outsider must not get access")
	}
}

func TestResolveChapterAccessMissingChapter(t *testing.T) {
	f := newFixture()

	_, err := f.resolver.ResolveChapterAccess(context.Background(), f.studentID, model.RoleStudent, uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveChapterAccessDanglingSubjectLink(t *testing.T) {
	f := newFixture()
	orphanChapter := uuid.New()
	f.store.chapters[orphanChapter] = &ChapterInfo{SubjectID: uuid.New()}

	_, err := f.resolver.ResolveChapterAccess(context.Background(), f.studentID, model.RoleStudent, orphanChapter)
	if !IsNotFound(err) {
		t.Fatalf("dangling link must resolve to ErrNotFound, got %v", err)
	}
}

func TestResolveChapterAccessIdempotent(t *testing.T) {
	f := newFixture()

	first, err := f.resolver.ResolveChapterAccess(context.Background(), f.assignedID, model.RoleTeacher, f.chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.resolver.ResolveChapterAccess(context.Background(), f.assignedID, model.RoleTeacher, f.chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("same state must give same decision: %+v vs %+v", first, second)
	}
}

func TestResolveChapterAccessCancelledContext(t *testing.T) {
	f := newFixture()
	f.store.err = context.Canceled

	_, err := f.resolver.ResolveChapterAccess(context.Background(), f.studentID, model.RoleStudent, f.chapterID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancellation must propagate, got %v", err)
	}
	if IsDenied(err) || IsNotFound(err) {
		t.Fatalf("cancellation must not look like an access decision: %v", err)
	}
}

func TestHasSubjectTeacherAuthorityExplicitAccess(t *testing.T) {
	f := newFixture()

	ok, err := f.resolver.ResolveSubjectTeacherAuthority(context.Background(), f.assignedID, f.subjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("explicit teacher_access row must grant authority")
	}
}

func TestHasSubjectTeacherAuthorityCreatorFallback(t *testing.T) {
	f := newFixture()

	ok, err := f.resolver.ResolveSubjectTeacherAuthority(context.Background(), f.creatorID, f.subjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("classroom creator must have authority over its subjects")
	}
}

func TestHasSubjectTeacherAuthorityDeniedForOthers(t *testing.T) {
	f := newFixture()

	ok, err := f.resolver.ResolveSubjectTeacherAuthority(context.Background(), f.studentID, f.subjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("member without teacher_access must not have authority")
	}
}

func TestHasSubjectTeacherAuthorityMissingSubject(t *testing.T) {
	f := newFixture()

	_, err := f.resolver.ResolveSubjectTeacherAuthority(context.Background(), f.creatorID, uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthorityMonotonicGrantOnlyWidens(t *testing.T) {
	f := newFixture()
	newTeacher := uuid.New()

	ok, err := f.resolver.ResolveSubjectTeacherAuthority(context.Background(), newTeacher, f.subjectID)
	if err != nil || ok {
		t.Fatalf("no authority expected before grant: ok=%v err=%v", ok, err)
	}

	f.store.teacherAccess[f.subjectID] = append(f.store.teacherAccess[f.subjectID], newTeacher)

	ok, err = f.resolver.ResolveSubjectTeacherAuthority(context.Background(), newTeacher, f.subjectID)
	if err != nil || !ok {
		t.Fatalf("authority expected after grant: ok=%v err=%v", ok, err)
	}

	// Грант не отнимает власть у остальных
	ok, err = f.resolver.ResolveSubjectTeacherAuthority(context.Background(), f.creatorID, f.subjectID)
	if err != nil || !ok {
		t.Fatalf("creator must keep authority: ok=%v err=%v", ok, err)
	}
}

func TestLocateChapterNeverReturnsPartialResult(t *testing.T) {
	f := newFixture()
	orphanChapter := uuid.New()
	f.store.chapters[orphanChapter] = &ChapterInfo{SubjectID: uuid.New()}

	subjectID, classroomID, err := f.resolver.Navigator().LocateChapter(context.Background(), orphanChapter)
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if subjectID != uuid.Nil || classroomID != uuid.Nil {
		t.Fatalf("partial result leaked: subject=%s classroom=%s", subjectID, classroomID)
	}
}
