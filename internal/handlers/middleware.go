package handlers

import (
	"net/http"
	"strings"

	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware создаёт middleware авторизации: проверяет Bearer-токен
// и кладёт профиль пользователя в контекст запроса
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// TeacherOnlyMiddleware пропускает только преподавателей
func TeacherOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsTeacher() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Teacher role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// StudentOnlyMiddleware пропускает только студентов
func StudentOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsStudent() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Student role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
