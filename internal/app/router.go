package app

import (
	"net/http"
	"time"

	"github.com/edunexus/backend/internal/handlers"
	"github.com/edunexus/backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers — набор HTTP-обработчиков для маршрутизатора
type Handlers struct {
	Auth          *handlers.AuthHandler
	Classroom     *handlers.ClassroomHandler
	Subject       *handlers.SubjectHandler
	Chapter       *handlers.ChapterHandler
	TeacherAccess *handlers.TeacherAccessHandler
	Note          *handlers.NoteHandler
	Question      *handlers.QuestionHandler
	Announcement  *handlers.AnnouncementHandler
	Dashboard     *handlers.DashboardHandler
}

// NewRouter собирает gin-роутер со всеми маршрутами API
func NewRouter(env string, authService *service.AuthService, h Handlers) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Регистрация проверяет Bearer-токен сама, профиля ещё нет
	api.POST("/auth/register", h.Auth.Register)

	authed := api.Group("")
	authed.Use(handlers.AuthMiddleware(authService))
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/classrooms", h.Classroom.List)
		authed.GET("/classrooms/:id", h.Classroom.Get)
		authed.GET("/classrooms/:id/subjects", h.Subject.ListByClassroom)

		authed.GET("/subjects/:id", h.Subject.Get)
		authed.GET("/subjects/:id/chapters", h.Chapter.ListBySubject)
		authed.GET("/subjects/:id/teachers", h.TeacherAccess.ListBySubject)

		authed.GET("/chapters/:id", h.Chapter.Get)
		authed.GET("/chapters/:id/notes", h.Note.ListByChapter)
		authed.GET("/chapters/:id/questions", h.Question.ListByChapter)
		authed.GET("/chapters/:id/community", h.Question.Community)
		authed.GET("/chapters/:id/announcements", h.Announcement.ListByChapter)

		authed.POST("/notes", h.Note.Create)
		authed.POST("/questions", h.Question.Create)
		authed.GET("/questions/mine", h.Question.Mine)

		students := authed.Group("")
		students.Use(handlers.StudentOnlyMiddleware())
		{
			students.POST("/classrooms/join", h.Classroom.Join)
		}

		teachers := authed.Group("")
		teachers.Use(handlers.TeacherOnlyMiddleware())
		{
			teachers.POST("/classrooms", h.Classroom.Create)
			teachers.DELETE("/classrooms/:id", h.Classroom.Delete)

			teachers.POST("/subjects", h.Subject.Create)
			teachers.DELETE("/subjects/:id", h.Subject.Delete)

			teachers.POST("/chapters", h.Chapter.Create)

			teachers.POST("/teacher-access", h.TeacherAccess.Assign)
			teachers.DELETE("/teacher-access/:id", h.TeacherAccess.Revoke)

			teachers.PATCH("/notes/:id/review", h.Note.Review)
			teachers.POST("/questions/:id/answer", h.Question.Answer)

			teachers.POST("/announcements", h.Announcement.Create)

			teachers.GET("/dashboard/teacher", h.Dashboard.Teacher)
		}
	}

	return router
}
