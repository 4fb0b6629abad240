package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/edunexus/backend/internal/access"
	"github.com/edunexus/backend/internal/app"
	"github.com/edunexus/backend/internal/config"
	"github.com/edunexus/backend/internal/handlers"
	"github.com/edunexus/backend/internal/repository"
	"github.com/edunexus/backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting edunexus backend", zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	classroomRepo := repository.NewClassroomRepository(pool, logger)
	memberRepo := repository.NewMemberRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	chapterRepo := repository.NewChapterRepository(pool)
	teacherAccessRepo := repository.NewTeacherAccessRepository(pool)
	noteRepo := repository.NewNoteRepository(pool, logger)
	questionRepo := repository.NewQuestionRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	// Ядро доступа
	store := repository.NewAccessStore(classroomRepo, subjectRepo, chapterRepo, memberRepo, teacherAccessRepo)
	resolver := access.NewResolver(store, logger)
	aggregator := access.NewAggregator(store)

	// Сервисы
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), logger)
	classroomService := service.NewClassroomService(classroomRepo, memberRepo, resolver, logger)
	subjectService := service.NewSubjectService(subjectRepo, resolver)
	chapterService := service.NewChapterService(chapterRepo, resolver)
	teacherAccessService := service.NewTeacherAccessService(teacherAccessRepo, userRepo, resolver, logger)
	noteService := service.NewNoteService(noteRepo, resolver, logger)
	questionService := service.NewQuestionService(questionRepo, resolver)
	announcementService := service.NewAnnouncementService(announcementRepo, resolver)
	dashboardService := service.NewDashboardService(classroomRepo, noteRepo, questionRepo, aggregator, logger)

	router := app.NewRouter(cfg.Environment, authService, app.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Classroom:     handlers.NewClassroomHandler(classroomService),
		Subject:       handlers.NewSubjectHandler(subjectService),
		Chapter:       handlers.NewChapterHandler(chapterService),
		TeacherAccess: handlers.NewTeacherAccessHandler(teacherAccessService),
		Note:          handlers.NewNoteHandler(noteService),
		Question:      handlers.NewQuestionHandler(questionService),
		Announcement:  handlers.NewAnnouncementHandler(announcementService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
	})

	server := app.NewServer(cfg.HTTPAddr, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
