package handlers

import (
	"net/http"

	"github.com/edunexus/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeacherAccessHandler struct {
	teacherAccessService *service.TeacherAccessService
}

func NewTeacherAccessHandler(teacherAccessService *service.TeacherAccessService) *TeacherAccessHandler {
	return &TeacherAccessHandler{teacherAccessService: teacherAccessService}
}

type AssignTeacherRequest struct {
	SubjectID    uuid.UUID `json:"subject_id" binding:"required"`
	TeacherEmail string    `json:"teacher_email" binding:"required,email"`
}

// Assign назначает учителя на предмет по email
func (h *TeacherAccessHandler) Assign(c *gin.Context) {
	var req AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	assigned, err := h.teacherAccessService.Assign(c.Request.Context(), user.ID, req.SubjectID, req.TeacherEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assigned)
}

// ListBySubject возвращает назначенных на предмет учителей
func (h *TeacherAccessHandler) ListBySubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject ID"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teachers, err := h.teacherAccessService.List(c.Request.Context(), user.ID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// Revoke отзывает назначение учителя
func (h *TeacherAccessHandler) Revoke(c *gin.Context) {
	accessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid access ID"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.teacherAccessService.Revoke(c.Request.Context(), user.ID, accessID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
