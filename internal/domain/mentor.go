package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFounder Role = "founder"
	RoleMentor  Role = "mentor"
)

// MentorProfile is the public part of a mentor's user profile.
type MentorProfile struct {
	ID                      uuid.UUID `json:"id"`
	FullName                string    `json:"full_name"`
	Bio                     string    `json:"bio"`
	Title                   string    `json:"title"`
	Organization            string    `json:"organization"`
	Location                string    `json:"location"`
	PhotoURL                *string   `json:"photo_url"`
	LinkedInURL             *string   `json:"linkedin_url"`
	YearsExperience         int       `json:"years_experience"`
	AdvisoryExperience      bool      `json:"advisory_experience"`
	Sectors                 []string  `json:"sectors"`
	Expertise               []string  `json:"expertise"`
	StagePreference         []string  `json:"stage_preference"`
	AvailabilityHoursMonth  int       `json:"availability_hours_month"`
	RatePerHour             float64   `json:"rate_per_hour"`
	ProBono                 bool      `json:"pro_bono"`
	PreferredMentorshipMode string    `json:"preferred_mentorship_mode"`
	ProfileVisibility       bool      `json:"profile_visibility"`
	CreatedAt               time.Time `json:"created_at"`
}

// Country returns the last comma-separated segment of the location,
// or an empty string when no location is set.
func (m *MentorProfile) Country() string {
	return CountryOf(m.Location)
}

// CountryOf extracts the country segment from a free-text location such as
// "Nairobi, Kenya".
func CountryOf(location string) string {
	if location == "" {
		return ""
	}
	idx := strings.LastIndex(location, ",")
	return strings.TrimSpace(location[idx+1:])
}

func (m *MentorProfile) Party() RequestParty {
	return RequestParty{
		ID:           m.ID,
		FullName:     m.FullName,
		PhotoURL:     m.PhotoURL,
		Bio:          m.Bio,
		Title:        m.Title,
		Organization: m.Organization,
		Location:     m.Location,
	}
}
