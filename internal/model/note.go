package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID             uuid.UUID  `json:"id"`
	ChapterID      uuid.UUID  `json:"chapter_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	UploadedBy     uuid.UUID  `json:"uploaded_by"`
	Visibility     string     `json:"visibility"`      // 'public' или 'private'
	ApprovalStatus string     `json:"approval_status"` // 'pending', 'approved', 'rejected'
	ApprovedBy     *uuid.UUID `json:"approved_by"`
	ApprovedAt     *time.Time `json:"approved_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Visibility constants
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Approval status constants
const (
	NoteStatusPending  = "pending"
	NoteStatusApproved = "approved"
	NoteStatusRejected = "rejected"
)

// IsApproved checks if note passed teacher review
func (n *Note) IsApproved() bool {
	return n.ApprovalStatus == NoteStatusApproved
}

// IsPending checks if note awaits teacher review
func (n *Note) IsPending() bool {
	return n.ApprovalStatus == NoteStatusPending
}

// PendingNote — заметка на модерации вместе с контекстом иерархии,
// используется дашбордом учителя
type PendingNote struct {
	Note
	ChapterName string    `json:"chapter_name"`
	SubjectID   uuid.UUID `json:"subject_id"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	AuthorName  string    `json:"author_name"`
}
