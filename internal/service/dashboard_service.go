package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TeacherDashboard — агрегированный ответ дашборда учителя
type TeacherDashboard struct {
	CreatedClassrooms  []*model.Classroom       `json:"created_classrooms"`
	AccessedClassrooms []*model.Classroom       `json:"accessed_classrooms"`
	PendingNotes       []*model.PendingNote     `json:"pending_notes"`
	PendingQuestions   []*model.PendingQuestion `json:"pending_questions"`
}

type DashboardService struct {
	classroomRepo *repository.ClassroomRepository
	noteRepo      *repository.NoteRepository
	questionRepo  *repository.QuestionRepository
	aggregator    *access.Aggregator
	logger        *zap.Logger
}

func NewDashboardService(
	classroomRepo *repository.ClassroomRepository,
	noteRepo *repository.NoteRepository,
	questionRepo *repository.QuestionRepository,
	aggregator *access.Aggregator,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		classroomRepo: classroomRepo,
		noteRepo:      noteRepo,
		questionRepo:  questionRepo,
		aggregator:    aggregator,
		logger:        logger,
	}
}

// GetTeacherDashboard собирает дашборд учителя: созданные и назначенные
// классы плюс pending-элементы. Каждый pending-элемент показывается ровно
// одному кругу учителей: назначенным на предмет, а если назначенных нет —
// создателю класса. Множество видимых предметов вычисляется один раз
// на запрос.
func (s *DashboardService) GetTeacherDashboard(ctx context.Context, teacherID uuid.UUID) (*TeacherDashboard, error) {
	created, err := s.classroomRepo.GetCreatedBy(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get created classrooms: %w", err)
	}

	accessed, err := s.classroomRepo.GetByTeacherAccess(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get accessed classrooms: %w", err)
	}

	// Назначенные классы, которые учитель сам же и создал, не дублируем
	createdIDs := make(map[uuid.UUID]struct{}, len(created))
	for _, classroom := range created {
		createdIDs[classroom.ID] = struct{}{}
	}
	accessedOnly := make([]*model.Classroom, 0, len(accessed))
	for _, classroom := range accessed {
		if _, ok := createdIDs[classroom.ID]; !ok {
			accessedOnly = append(accessedOnly, classroom)
		}
	}

	visibleSubjects, err := s.aggregator.ResolveDelegatedSubjects(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("resolve delegated subjects: %w", err)
	}

	allPendingNotes, err := s.noteRepo.GetPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pending notes: %w", err)
	}

	pendingNotes := make([]*model.PendingNote, 0, len(allPendingNotes))
	for _, note := range allPendingNotes {
		if _, ok := visibleSubjects[note.SubjectID]; ok {
			pendingNotes = append(pendingNotes, note)
		}
	}

	allUnanswered, err := s.questionRepo.GetUnanswered(ctx)
	if err != nil {
		return nil, fmt.Errorf("get unanswered questions: %w", err)
	}

	pendingQuestions := make([]*model.PendingQuestion, 0, len(allUnanswered))
	for _, question := range allUnanswered {
		if _, ok := visibleSubjects[question.SubjectID]; ok {
			pendingQuestions = append(pendingQuestions, question)
		}
	}

	s.logger.Debug("Teacher dashboard assembled",
		zap.String("teacher_id", teacherID.String()),
		zap.Int("visible_subjects", len(visibleSubjects)),
		zap.Int("pending_notes", len(pendingNotes)),
		zap.Int("pending_questions", len(pendingQuestions)))

	return &TeacherDashboard{
		CreatedClassrooms:  created,
		AccessedClassrooms: accessedOnly,
		PendingNotes:       pendingNotes,
		PendingQuestions:   pendingQuestions,
	}, nil
}
