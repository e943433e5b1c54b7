package postgres

import (
	"context"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// connectionRepository is only handed out inside a transaction, together
// with the request transition that creates the connection.
type connectionRepository struct {
	db sqlx.ExtContext
}

func (r *connectionRepository) Create(ctx context.Context, conn *domain.MentorshipConnection) error {
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	if conn.Status == "" {
		conn.Status = domain.ConnectionActive
	}
	query := `
		INSERT INTO mentorship_connections (id, founder_id, mentor_id, request_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowxContext(ctx, query, conn.ID, conn.FounderID, conn.MentorID, conn.RequestID, conn.Status).
		Scan(&conn.CreatedAt)
}
