package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // 'student' или 'teacher', не меняется после регистрации
	CreatedAt time.Time `json:"created_at"`
}

// Role constants
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// IsTeacher checks if user has the teacher role
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsStudent checks if user has the student role
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
