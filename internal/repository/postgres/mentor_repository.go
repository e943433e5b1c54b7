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

const mentorColumns = `
	id, full_name, bio, title, organization, location, photo_url, linkedin_url,
	years_experience, advisory_experience, sectors, expertise, stage_preference,
	availability_hours_month, rate_per_hour, pro_bono, preferred_mentorship_mode,
	profile_visibility, created_at
`

// Only mentors who finished onboarding and opted into visibility take part
// in browsing and matching.
const visibleMentorClause = `role = 'mentor' AND profile_visibility = true AND onboarding_completed = true`

type mentorRow struct {
	ID                      uuid.UUID       `db:"id"`
	FullName                sql.NullString  `db:"full_name"`
	Bio                     sql.NullString  `db:"bio"`
	Title                   sql.NullString  `db:"title"`
	Organization            sql.NullString  `db:"organization"`
	Location                sql.NullString  `db:"location"`
	PhotoURL                *string         `db:"photo_url"`
	LinkedInURL             *string         `db:"linkedin_url"`
	YearsExperience         sql.NullInt64   `db:"years_experience"`
	AdvisoryExperience      sql.NullBool    `db:"advisory_experience"`
	Sectors                 pq.StringArray  `db:"sectors"`
	Expertise               pq.StringArray  `db:"expertise"`
	StagePreference         pq.StringArray  `db:"stage_preference"`
	AvailabilityHoursMonth  sql.NullInt64   `db:"availability_hours_month"`
	RatePerHour             sql.NullFloat64 `db:"rate_per_hour"`
	ProBono                 sql.NullBool    `db:"pro_bono"`
	PreferredMentorshipMode sql.NullString  `db:"preferred_mentorship_mode"`
	ProfileVisibility       bool            `db:"profile_visibility"`
	CreatedAt               sql.NullTime    `db:"created_at"`
}

func (r *mentorRow) toDomain() *domain.MentorProfile {
	return &domain.MentorProfile{
		ID:                      r.ID,
		FullName:                r.FullName.String,
		Bio:                     r.Bio.String,
		Title:                   r.Title.String,
		Organization:            r.Organization.String,
		Location:                r.Location.String,
		PhotoURL:                r.PhotoURL,
		LinkedInURL:             r.LinkedInURL,
		YearsExperience:         max(int(r.YearsExperience.Int64), 0),
		AdvisoryExperience:      r.AdvisoryExperience.Bool,
		Sectors:                 []string(r.Sectors),
		Expertise:               []string(r.Expertise),
		StagePreference:         []string(r.StagePreference),
		AvailabilityHoursMonth:  int(r.AvailabilityHoursMonth.Int64),
		RatePerHour:             r.RatePerHour.Float64,
		ProBono:                 r.ProBono.Bool,
		PreferredMentorshipMode: r.PreferredMentorshipMode.String,
		ProfileVisibility:       r.ProfileVisibility,
		CreatedAt:               r.CreatedAt.Time,
	}
}

type mentorRepository struct {
	db *sqlx.DB
}

func NewMentorRepository(db *sqlx.DB) repository.MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) ListVisible(ctx context.Context) ([]*domain.MentorProfile, error) {
	var rows []mentorRow
	query := `SELECT ` + mentorColumns + ` FROM user_profiles WHERE ` + visibleMentorClause + ` ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	mentors := make([]*domain.MentorProfile, 0, len(rows))
	for i := range rows {
		mentors = append(mentors, rows[i].toDomain())
	}
	return mentors, nil
}

func (r *mentorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorProfile, error) {
	var row mentorRow
	query := `SELECT ` + mentorColumns + ` FROM user_profiles WHERE id = $1 AND ` + visibleMentorClause
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMentorNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}
