package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NoteService struct {
	noteRepo *repository.NoteRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

func NewNoteService(noteRepo *repository.NoteRepository, resolver *access.Resolver, logger *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		resolver: resolver,
		logger:   logger,
	}
}

// List возвращает заметки главы, отфильтрованные по правилам видимости:
// студент видит одобренные публичные плюс собственные, учитель — все
func (s *NoteService) List(ctx context.Context, user *model.User, chapterID uuid.UUID) ([]*model.Note, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	notes, err := s.noteRepo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return access.FilterNotes(notes, user.Role, user.ID), nil
}

// Create создаёт заметку. Заметка автора с учительской властью над
// предметом сразу одобрена, остальные попадают на модерацию.
func (s *NoteService) Create(ctx context.Context, user *model.User, chapterID uuid.UUID, title, content, visibility string) (*model.Note, error) {
	if visibility != model.VisibilityPublic && visibility != model.VisibilityPrivate {
		return nil, fmt.Errorf("invalid visibility: %s", visibility)
	}

	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	note := &model.Note{
		ChapterID:      chapterID,
		Title:          title,
		Content:        content,
		UploadedBy:     user.ID,
		Visibility:     visibility,
		ApprovalStatus: model.NoteStatusPending,
	}

	if decision.IsSubjectTeacher {
		now := time.Now().UTC()
		note.ApprovalStatus = model.NoteStatusApproved
		note.ApprovedBy = &user.ID
		note.ApprovedAt = &now
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

// Review одобряет или отклоняет заметку. Требует учительской власти над
// предметом главы. При одобрении проставляются модератор и время, при
// отклонении — сбрасываются, и заметка уходит из публичной выдачи.
func (s *NoteService) Review(ctx context.Context, user *model.User, noteID uuid.UUID, status string) (*model.Note, error) {
	if status != model.NoteStatusApproved && status != model.NoteStatusRejected {
		return nil, fmt.Errorf("invalid approval status: %s", status)
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("note %s: %w", noteID, access.ErrNotFound)
	}

	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, note.ChapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed || !decision.IsSubjectTeacher {
		return nil, access.ErrDenied
	}

	var approvedBy *uuid.UUID
	var approvedAt *time.Time
	if status == model.NoteStatusApproved {
		now := time.Now().UTC()
		approvedBy = &user.ID
		approvedAt = &now
	}

	if err := s.noteRepo.UpdateApproval(ctx, noteID, status, approvedBy, approvedAt); err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}

	s.logger.Info("Note reviewed",
		zap.String("note_id", noteID.String()),
		zap.String("status", status),
		zap.String("reviewed_by", user.ID.String()))

	note.ApprovalStatus = status
	note.ApprovedBy = approvedBy
	note.ApprovedAt = approvedAt

	return note, nil
}
