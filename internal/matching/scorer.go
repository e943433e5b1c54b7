package matching

import (
	"math"
	"sort"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

// MatchScore is the explained affinity of one mentor for one startup.
type MatchScore struct {
	Mentor    *domain.MentorProfile `json:"mentor"`
	Score     int                   `json:"score"`
	Reasons   []string              `json:"match_reasons"`
	Breakdown Breakdown             `json:"breakdown"`
}

// Scorer combines the score components with the reason rules.
// The zero value scores without region grouping.
type Scorer struct {
	Regions RegionTable
}

func NewScorer(regions RegionTable) Scorer {
	return Scorer{Regions: regions}
}

// Score never fails; missing data contributes nothing.
func (s Scorer) Score(mentor *domain.MentorProfile, startup *domain.StartupProfile) MatchScore {
	b := Breakdown{
		Sector:    SectorScore(mentor.Sectors, startup.Sector),
		Stage:     StageScore(mentor.StagePreference, startup.Stage),
		Expertise: ExpertiseScore(mentor.Expertise, startup.MentorshipAreas),
		Location:  LocationScore(mentor.Location, startup.Location, s.Regions),
	}

	return MatchScore{
		Mentor:    mentor,
		Score:     int(math.Round(b.Total())),
		Reasons:   Reasons(mentor, startup, b),
		Breakdown: b,
	}
}

// Rank scores every mentor and returns at most limit results ordered by
// score, then years of experience, then mentor id.
func (s Scorer) Rank(mentors []*domain.MentorProfile, startup *domain.StartupProfile, limit int) []MatchScore {
	matches := make([]MatchScore, 0, len(mentors))
	for _, m := range mentors {
		matches = append(matches, s.Score(m, startup))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Mentor.YearsExperience != b.Mentor.YearsExperience {
			return a.Mentor.YearsExperience > b.Mentor.YearsExperience
		}
		return a.Mentor.ID.String() < b.Mentor.ID.String()
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
