package handlers

import (
	"net/http"

	"github.com/edunexus/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClassroomHandler struct {
	classroomService *service.ClassroomService
}

func NewClassroomHandler(classroomService *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

type CreateClassroomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type JoinClassroomRequest struct {
	Code string `json:"code" binding:"required"`
}

// Create создаёт класс (только преподаватель)
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classroom, err := h.classroomService.Create(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, classroom)
}

// Join записывает студента в класс по коду
func (h *ClassroomHandler) Join(c *gin.Context) {
	var req JoinClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classroom, err := h.classroomService.Join(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, classroom)
}

// List возвращает классы текущего пользователя
func (h *ClassroomHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classrooms, err := h.classroomService.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, classrooms)
}

// Get возвращает класс по ID
func (h *ClassroomHandler) Get(c *gin.Context) {
	classroomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid classroom ID"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classroom, err := h.classroomService.Get(c.Request.Context(), user, classroomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, classroom)
}

// Delete удаляет класс (только создатель)
func (h *ClassroomHandler) Delete(c *gin.Context) {
	classroomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid classroom ID"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), user.ID, classroomID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
