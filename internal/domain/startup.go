package domain

import (
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageIdea   Stage = "idea"
	StageMVP    Stage = "mvp"
	StageGrowth Stage = "growth"
	StageScale  Stage = "scale"
)

var stageLabels = map[Stage]string{
	StageIdea:   "Idea Stage",
	StageMVP:    "Early Stage",
	StageGrowth: "Growth Stage",
	StageScale:  "Scaling Stage",
}

// Label returns the display name of the stage. Unknown stages are returned as is.
func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Stage) IsValid() bool {
	_, ok := stageLabels[s]
	return ok
}

// FounderProfile is the user profile of a founder.
type FounderProfile struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	PhotoURL            *string   `json:"photo_url"`
	Bio                 string    `json:"bio"`
	Location            string    `json:"location"`
	Role                Role      `json:"role"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
}

func (f *FounderProfile) Party() RequestParty {
	return RequestParty{
		ID:       f.ID,
		FullName: f.FullName,
		PhotoURL: f.PhotoURL,
		Bio:      f.Bio,
		Location: f.Location,
	}
}

// StartupProfile belongs to exactly one founder.
type StartupProfile struct {
	ID              uuid.UUID `json:"id"`
	FounderID       uuid.UUID `json:"user_id"`
	StartupName     string    `json:"startup_name"`
	Sector          string    `json:"sector"`
	Stage           Stage     `json:"stage"`
	Location        string    `json:"location"`
	MentorshipAreas []string  `json:"mentorship_areas"`
	CreatedAt       time.Time `json:"created_at"`
}
