package model

import (
	"time"

	"github.com/google/uuid"
)

type Chapter struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   uuid.UUID `json:"subject_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Position    int       `json:"position"` // порядок внутри предмета
	CreatedAt   time.Time `json:"created_at"`
}
