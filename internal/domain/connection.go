package domain

import (
	"time"

	"github.com/google/uuid"
)

const ConnectionActive = "active"

// MentorshipConnection is created once for every accepted request.
type MentorshipConnection struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FounderID uuid.UUID `json:"founder_id" db:"founder_id"`
	MentorID  uuid.UUID `json:"mentor_id" db:"mentor_id"`
	RequestID uuid.UUID `json:"request_id" db:"request_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
