package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// Два учителя, два класса: у T1 предмет без назначений и предмет,
// делегированный T2
func delegationFixture() (*fakeStore, uuid.UUID, uuid.UUID, uuid.UUID, uuid.UUID) {
	store := newFakeStore()
	t1 := uuid.New()
	t2 := uuid.New()

	classroom := uuid.New()
	store.classrooms[classroom] = &ClassroomInfo{CreatorID: t1, Code: "MATH01"}

	unclaimed := uuid.New()
	delegated := uuid.New()
	store.subjects[unclaimed] = &SubjectInfo{ClassroomID: classroom}
	store.subjects[delegated] = &SubjectInfo{ClassroomID: classroom}
	store.teacherAccess[delegated] = []uuid.UUID{t2}

	return store, t1, t2, unclaimed, delegated
}

func TestResolveDelegatedSubjectsCreatorKeepsUnclaimed(t *testing.T) {
	store, t1, _, unclaimed, delegated := delegationFixture()
	agg := NewAggregator(store)

	visible, err := agg.ResolveDelegatedSubjects(context.Background(), t1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := visible[unclaimed]; !ok {
		t.Fatal("creator must keep subject without assigned teachers")
	}
	if _, ok := visible[delegated]; ok {
		t.Fatal("creator must lose subject once any teacher is assigned")
	}
}

func TestResolveDelegatedSubjectsAssignedTeacherSeesSubject(t *testing.T) {
	store, _, t2, unclaimed, delegated := delegationFixture()
	agg := NewAggregator(store)

	visible, err := agg.ResolveDelegatedSubjects(context.Background(), t2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := visible[delegated]; !ok {
		t.Fatal("assigned teacher must see the delegated subject")
	}
	if _, ok := visible[unclaimed]; ok {
		t.Fatal("assigned teacher must not see unrelated subjects")
	}
}

// Создатель, назначивший сам себя, видит предмет ровно один раз
// через ветку assigned
func TestResolveDelegatedSubjectsCreatorAlsoAssigned(t *testing.T) {
	store, t1, _, _, delegated := delegationFixture()
	store.teacherAccess[delegated] = append(store.teacherAccess[delegated], t1)
	agg := NewAggregator(store)

	visible, err := agg.ResolveDelegatedSubjects(context.Background(), t1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := visible[delegated]; !ok {
		t.Fatal("creator assigned to own subject must still see it")
	}
}

func TestResolveDelegatedSubjectsNoCreatedSkipsClaimedCheck(t *testing.T) {
	store, _, t2, _, _ := delegationFixture()
	agg := NewAggregator(store)

	if _, err := agg.ResolveDelegatedSubjects(context.Background(), t2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.claimedCalls != 0 {
		t.Fatalf("claimed check must be skipped without created subjects, got %d calls", store.claimedCalls)
	}
}

func TestResolveDelegatedSubjectsSingleClaimedCheck(t *testing.T) {
	store, t1, _, _, _ := delegationFixture()
	agg := NewAggregator(store)

	if _, err := agg.ResolveDelegatedSubjects(context.Background(), t1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.claimedCalls != 1 {
		t.Fatalf("expected exactly one batched claimed check, got %d", store.claimedCalls)
	}
}

func TestResolveDelegatedSubjectsStoreError(t *testing.T) {
	store, t1, _, _, _ := delegationFixture()
	storeErr := errors.New("connection refused")
	store.err = storeErr
	agg := NewAggregator(store)

	_, err := agg.ResolveDelegatedSubjects(context.Background(), t1)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestResolveDelegatedSubjectsEmptyForStranger(t *testing.T) {
	store, _, _, _, _ := delegationFixture()
	agg := NewAggregator(store)

	visible, err := agg.ResolveDelegatedSubjects(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("stranger must see nothing, got %d subjects", len(visible))
	}
}
