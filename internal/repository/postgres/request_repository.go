package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// requestRepository runs against either the pool or a transaction.
type requestRepository struct {
	db sqlx.ExtContext
}

func NewRequestRepository(db *sqlx.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.MentorshipRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	query := `
		INSERT INTO mentorship_requests (id, founder_id, mentor_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query, req.ID, req.FounderID, req.MentorID, req.Message, req.Status).
		Scan(&req.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateRequest
	}
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	var req domain.MentorshipRequest
	query := `
		SELECT id, founder_id, mentor_id, message, status, created_at, responded_at
		FROM mentorship_requests WHERE id = $1
	`
	err := sqlx.GetContext(ctx, r.db, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListRequestedMentorIDs(ctx context.Context, founderID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT DISTINCT mentor_id FROM mentorship_requests WHERE founder_id = $1`
	err := sqlx.SelectContext(ctx, r.db, &ids, query, founderID)
	return ids, err
}

func (r *requestRepository) HasPendingRequest(ctx context.Context, founderID, mentorID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM mentorship_requests
			WHERE founder_id = $1 AND mentor_id = $2 AND status = 'pending'
		)
	`
	err := sqlx.GetContext(ctx, r.db, &exists, query, founderID, mentorID)
	return exists, err
}

func (r *requestRepository) Transition(ctx context.Context, req *domain.MentorshipRequest, status domain.RequestStatus) error {
	now := time.Now().UTC()
	// The status condition makes concurrent responders race on the row:
	// exactly one of them sees a row updated.
	query := `
		UPDATE mentorship_requests
		SET status = $1, responded_at = $2
		WHERE id = $3 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, status, now, req.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrRequestNotPending
	}

	req.Status = status
	req.RespondedAt = &now
	return nil
}

type requestViewRow struct {
	domain.MentorshipRequest

	FounderFullName    sql.NullString `db:"founder_full_name"`
	FounderPhotoURL    *string        `db:"founder_photo_url"`
	FounderBio         sql.NullString `db:"founder_bio"`
	FounderLocation    sql.NullString `db:"founder_location"`
	MentorFullName     sql.NullString `db:"mentor_full_name"`
	MentorPhotoURL     *string        `db:"mentor_photo_url"`
	MentorBio          sql.NullString `db:"mentor_bio"`
	MentorTitle        sql.NullString `db:"mentor_title"`
	MentorOrganization sql.NullString `db:"mentor_organization"`
	MentorLocation     sql.NullString `db:"mentor_location"`
	StartupID          uuid.NullUUID  `db:"startup_id"`
	StartupName        sql.NullString `db:"startup_name"`
	StartupSector      sql.NullString `db:"startup_sector"`
	StartupStage       sql.NullString `db:"startup_stage"`
	StartupLocation    sql.NullString `db:"startup_location"`
	StartupAreas       pq.StringArray `db:"startup_mentorship_areas"`
	StartupCreatedAt   sql.NullTime   `db:"startup_created_at"`
}

func (row *requestViewRow) toDomain() *domain.RequestView {
	v := &domain.RequestView{
		MentorshipRequest: row.MentorshipRequest,
		Founder: domain.RequestParty{
			ID:       row.FounderID,
			FullName: row.FounderFullName.String,
			PhotoURL: row.FounderPhotoURL,
			Bio:      row.FounderBio.String,
			Location: row.FounderLocation.String,
		},
		Mentor: domain.RequestParty{
			ID:           row.MentorID,
			FullName:     row.MentorFullName.String,
			PhotoURL:     row.MentorPhotoURL,
			Bio:          row.MentorBio.String,
			Title:        row.MentorTitle.String,
			Organization: row.MentorOrganization.String,
			Location:     row.MentorLocation.String,
		},
	}
	if row.StartupID.Valid {
		v.Startup = &domain.StartupProfile{
			ID:              row.StartupID.UUID,
			FounderID:       row.FounderID,
			StartupName:     row.StartupName.String,
			Sector:          row.StartupSector.String,
			Stage:           domain.Stage(row.StartupStage.String),
			Location:        row.StartupLocation.String,
			MentorshipAreas: []string(row.StartupAreas),
			CreatedAt:       row.StartupCreatedAt.Time,
		}
	}
	return v
}

func (r *requestRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter repository.RequestFilter) ([]*domain.RequestView, error) {
	query := `
		SELECT r.id, r.founder_id, r.mentor_id, r.message, r.status, r.created_at, r.responded_at,
			f.full_name AS founder_full_name, f.photo_url AS founder_photo_url,
			f.bio AS founder_bio, f.location AS founder_location,
			m.full_name AS mentor_full_name, m.photo_url AS mentor_photo_url,
			m.bio AS mentor_bio, m.title AS mentor_title,
			m.organization AS mentor_organization, m.location AS mentor_location,
			s.id AS startup_id, s.startup_name, s.sector AS startup_sector,
			s.stage AS startup_stage, s.location AS startup_location,
			s.mentorship_areas AS startup_mentorship_areas, s.created_at AS startup_created_at
		FROM mentorship_requests r
		JOIN user_profiles f ON f.id = r.founder_id
		JOIN user_profiles m ON m.id = r.mentor_id
		LEFT JOIN startup_profiles s ON s.user_id = r.founder_id
		WHERE
	`
	args := []interface{}{userID}
	argCount := 2

	switch filter.Role {
	case domain.RoleFounder:
		query += ` r.founder_id = $1`
	case domain.RoleMentor:
		query += ` r.mentor_id = $1`
	default:
		query += ` (r.founder_id = $1 OR r.mentor_id = $1)`
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", argCount)
		args = append(args, filter.Status)
	}

	query += ` ORDER BY r.created_at DESC`

	var rows []requestViewRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	views := make([]*domain.RequestView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toDomain())
	}
	return views, nil
}
