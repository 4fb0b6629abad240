package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
)

type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
	resolver         *access.Resolver
}

func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository, resolver *access.Resolver) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		resolver:         resolver,
	}
}

// Create создаёт объявление. Требует учительской власти именно над
// предметом главы — общего доступа к классу недостаточно.
func (s *AnnouncementService) Create(ctx context.Context, user *model.User, chapterID uuid.UUID, title, content string) (*model.Announcement, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed || !decision.IsSubjectTeacher {
		return nil, access.ErrDenied
	}

	announcement := &model.Announcement{
		ChapterID: chapterID,
		Title:     title,
		Content:   content,
		CreatedBy: user.ID,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	return announcement, nil
}

// List возвращает объявления главы всем, у кого есть к ней доступ
func (s *AnnouncementService) List(ctx context.Context, user *model.User, chapterID uuid.UUID) ([]*model.Announcement, error) {
	decision, err := s.resolver.ResolveChapterAccess(ctx, user.ID, user.Role, chapterID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, access.ErrDenied
	}

	announcements, err := s.announcementRepo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	return announcements, nil
}
