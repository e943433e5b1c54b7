package matching

import (
	"fmt"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

// Breakdown holds the individual component contributions of a match.
type Breakdown struct {
	Sector    float64 `json:"sector"`
	Stage     float64 `json:"stage"`
	Expertise float64 `json:"expertise"`
	Location  float64 `json:"location"`
}

func (b Breakdown) Total() float64 {
	return b.Sector + b.Stage + b.Expertise + b.Location
}

// Reasons explains a match in display order, most specific first.
func Reasons(mentor *domain.MentorProfile, startup *domain.StartupProfile, b Breakdown) []string {
	reasons := make([]string, 0, 7)

	if b.Sector > 0 {
		reasons = append(reasons, "Expert in "+startup.Sector)
	}

	if b.Stage > 0 {
		reasons = append(reasons, fmt.Sprintf("Experienced with %s startups", startup.Stage.Label()))
	}

	if b.Expertise > WeightExpertise/2 {
		common := Overlap(mentor.Expertise, startup.MentorshipAreas)
		if len(common) > 0 {
			if len(common) > 2 {
				common = common[:2]
			}
			reasons = append(reasons, "Can help with "+strings.Join(common, " and "))
		}
	}

	if country := mentor.Country(); b.Location >= LocationCountry && country != "" {
		reasons = append(reasons, "Based in "+country)
	}

	if mentor.AdvisoryExperience {
		reasons = append(reasons, "Experienced advisor and investor")
	}

	if mentor.ProBono {
		reasons = append(reasons, "Offers pro bono sessions")
	}

	if mentor.YearsExperience >= 10 {
		reasons = append(reasons, fmt.Sprintf("%d+ years of experience", mentor.YearsExperience))
	}

	return reasons
}
