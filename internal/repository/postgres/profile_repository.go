package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type founderRepository struct {
	db *sqlx.DB
}

func NewFounderRepository(db *sqlx.DB) repository.FounderRepository {
	return &founderRepository{db: db}
}

func (r *founderRepository) GetProfile(ctx context.Context, founderID uuid.UUID) (*domain.FounderProfile, error) {
	var row struct {
		ID                  uuid.UUID      `db:"id"`
		FullName            sql.NullString `db:"full_name"`
		PhotoURL            *string        `db:"photo_url"`
		Bio                 sql.NullString `db:"bio"`
		Location            sql.NullString `db:"location"`
		Role                string         `db:"role"`
		OnboardingCompleted bool           `db:"onboarding_completed"`
	}
	query := `
		SELECT id, full_name, photo_url, bio, location, role, onboarding_completed
		FROM user_profiles WHERE id = $1
	`
	err := r.db.GetContext(ctx, &row, query, founderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFounderNotFound
		}
		return nil, err
	}
	return &domain.FounderProfile{
		ID:                  row.ID,
		FullName:            row.FullName.String,
		PhotoURL:            row.PhotoURL,
		Bio:                 row.Bio.String,
		Location:            row.Location.String,
		Role:                domain.Role(row.Role),
		OnboardingCompleted: row.OnboardingCompleted,
	}, nil
}

type startupRepository struct {
	db *sqlx.DB
}

func NewStartupRepository(db *sqlx.DB) repository.StartupRepository {
	return &startupRepository{db: db}
}

func (r *startupRepository) GetByFounderID(ctx context.Context, founderID uuid.UUID) (*domain.StartupProfile, error) {
	var row struct {
		ID              uuid.UUID      `db:"id"`
		UserID          uuid.UUID      `db:"user_id"`
		StartupName     string         `db:"startup_name"`
		Sector          sql.NullString `db:"sector"`
		Stage           sql.NullString `db:"stage"`
		Location        sql.NullString `db:"location"`
		MentorshipAreas pq.StringArray `db:"mentorship_areas"`
		CreatedAt       sql.NullTime   `db:"created_at"`
	}
	query := `
		SELECT id, user_id, startup_name, sector, stage, location, mentorship_areas, created_at
		FROM startup_profiles WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &row, query, founderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStartupNotFound
		}
		return nil, err
	}
	return &domain.StartupProfile{
		ID:              row.ID,
		FounderID:       row.UserID,
		StartupName:     row.StartupName,
		Sector:          row.Sector.String,
		Stage:           domain.Stage(row.Stage.String),
		Location:        row.Location.String,
		MentorshipAreas: []string(row.MentorshipAreas),
		CreatedAt:       row.CreatedAt.Time,
	}, nil
}
