package access

import (
	"testing"

	"github.com/edunexus/backend/internal/model"
	"github.com/google/uuid"
)

func TestNoteVisibleStudent(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()

	cases := []struct {
		name    string
		note    *model.Note
		visible bool
	}{
		{
			name:    "approved public visible to everyone",
			note:    &model.Note{UploadedBy: owner, ApprovalStatus: model.NoteStatusApproved, Visibility: model.VisibilityPublic},
			visible: true,
		},
		{
			name:    "approved private hidden from others",
			note:    &model.Note{UploadedBy: owner, ApprovalStatus: model.NoteStatusApproved, Visibility: model.VisibilityPrivate},
			visible: false,
		},
		{
			name:    "pending public hidden from others",
			note:    &model.Note{UploadedBy: owner, ApprovalStatus: model.NoteStatusPending, Visibility: model.VisibilityPublic},
			visible: false,
		},
		{
			name:    "rejected hidden from others",
			note:    &model.Note{UploadedBy: owner, ApprovalStatus: model.NoteStatusRejected, Visibility: model.VisibilityPublic},
			visible: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NoteVisible(model.RoleStudent, viewer, tc.note)
			if got != tc.visible {
				t.Fatalf("expected visible=%v, got %v", tc.visible, got)
			}
		})
	}
}

func TestNoteVisibleOwnerSeesAnyStatus(t *testing.T) {
	owner := uuid.New()

	for _, status := range []string{model.NoteStatusPending, model.NoteStatusApproved, model.NoteStatusRejected} {
		note := &model.Note{UploadedBy: owner, ApprovalStatus: status, Visibility: model.VisibilityPrivate}
		if !NoteVisible(model.RoleStudent, owner, note) {
			t.Fatalf("owner must see own note in status %q", status)
		}
	}
}

func TestNoteVisibleTeacherSeesAll(t *testing.T) {
	note := &model.Note{UploadedBy: uuid.New(), ApprovalStatus: model.NoteStatusPending, Visibility: model.VisibilityPrivate}
	if !NoteVisible(model.RoleTeacher, uuid.New(), note) {
		t.Fatal("teacher must see every note of an accessible chapter")
	}
}

// Одобрение и последующее отклонение возвращают заметку в скрытое
// для посторонних состояние
func TestNoteApproveThenRejectRoundTrip(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()
	note := &model.Note{UploadedBy: owner, ApprovalStatus: model.NoteStatusPending, Visibility: model.VisibilityPublic}

	if NoteVisible(model.RoleStudent, viewer, note) {
		t.Fatal("pending note must be hidden from other students")
	}

	note.ApprovalStatus = model.NoteStatusApproved
	if !NoteVisible(model.RoleStudent, viewer, note) {
		t.Fatal("approved public note must be visible")
	}

	note.ApprovalStatus = model.NoteStatusRejected
	if NoteVisible(model.RoleStudent, viewer, note) {
		t.Fatal("rejected note must be hidden again")
	}
	if !NoteVisible(model.RoleStudent, owner, note) {
		t.Fatal("owner keeps seeing own rejected note")
	}
}

func TestQuestionVisible(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()

	public := &model.Question{UserID: owner, IsPrivate: false}
	private := &model.Question{UserID: owner, IsPrivate: true}

	if !QuestionVisible(model.RoleStudent, viewer, public) {
		t.Fatal("public question must be visible to any student")
	}
	if QuestionVisible(model.RoleStudent, viewer, private) {
		t.Fatal("private question must be hidden from other students")
	}
	if !QuestionVisible(model.RoleStudent, owner, private) {
		t.Fatal("author must see own private question")
	}
	if !QuestionVisible(model.RoleTeacher, viewer, private) {
		t.Fatal("teacher must see private questions")
	}
}

func TestCommunityQuestionVisible(t *testing.T) {
	answer := "see chapter 3"

	cases := []struct {
		name     string
		question *model.Question
		visible  bool
	}{
		{"answered public", &model.Question{IsPrivate: false, Answer: &answer}, true},
		{"unanswered public", &model.Question{IsPrivate: false}, false},
		{"answered private", &model.Question{IsPrivate: true, Answer: &answer}, false},
		{"unanswered private", &model.Question{IsPrivate: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CommunityQuestionVisible(tc.question); got != tc.visible {
				t.Fatalf("expected visible=%v, got %v", tc.visible, got)
			}
		})
	}
}

func TestFilterNotesPreservesOrder(t *testing.T) {
	owner := uuid.New()
	notes := []*model.Note{
		{Title: "a", UploadedBy: owner, ApprovalStatus: model.NoteStatusApproved, Visibility: model.VisibilityPublic},
		{Title: "b", UploadedBy: uuid.New(), ApprovalStatus: model.NoteStatusPending, Visibility: model.VisibilityPublic},
		{Title: "c", UploadedBy: owner, ApprovalStatus: model.NoteStatusPending, Visibility: model.VisibilityPublic},
	}

	visible := FilterNotes(notes, model.RoleStudent, owner)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible notes, got %d", len(visible))
	}
	if visible[0].Title != "a" || visible[1].Title != "c" {
		t.Fatalf("order not preserved: %s, %s", visible[0].Title, visible[1].Title)
	}
}

func TestFilterCommunityQuestionsRoleBlind(t *testing.T) {
	answer := "42"
	questions := []*model.Question{
		{Title: "a", IsPrivate: false, Answer: &answer},
		{Title: "b", IsPrivate: true, Answer: &answer},
		{Title: "c", IsPrivate: false},
	}

	visible := FilterCommunityQuestions(questions)
	if len(visible) != 1 || visible[0].Title != "a" {
		t.Fatalf("community feed must contain only answered public questions, got %d", len(visible))
	}
}
