package matching

import (
	"slices"
	"sort"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
)

// MentorFilter is the browse predicate set. Nil or empty fields pass through;
// set fields are combined with AND.
type MentorFilter struct {
	Sector    string
	Expertise []string
	Stage     string
	Location  string
	ProBono   *bool
}

func (f MentorFilter) Matches(m *domain.MentorProfile) bool {
	if f.Sector != "" && !slices.Contains(m.Sectors, f.Sector) {
		return false
	}
	if len(f.Expertise) > 0 && len(Overlap(m.Expertise, f.Expertise)) == 0 {
		return false
	}
	if f.Stage != "" && !slices.Contains(m.StagePreference, f.Stage) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(m.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.ProBono != nil && m.ProBono != *f.ProBono {
		return false
	}
	return true
}

// Apply returns the mentors accepted by the filter, preserving order.
func (f MentorFilter) Apply(mentors []*domain.MentorProfile) []*domain.MentorProfile {
	out := make([]*domain.MentorProfile, 0, len(mentors))
	for _, m := range mentors {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// ExcludeRequested drops mentors the founder has already contacted,
// whatever the outcome of that request was.
func ExcludeRequested(mentors []*domain.MentorProfile, requested map[uuid.UUID]struct{}) []*domain.MentorProfile {
	out := make([]*domain.MentorProfile, 0, len(mentors))
	for _, m := range mentors {
		if _, ok := requested[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SortByExperience orders mentors by years of experience, most first.
func SortByExperience(mentors []*domain.MentorProfile) {
	sort.SliceStable(mentors, func(i, j int) bool {
		if mentors[i].YearsExperience != mentors[j].YearsExperience {
			return mentors[i].YearsExperience > mentors[j].YearsExperience
		}
		return mentors[i].ID.String() < mentors[j].ID.String()
	})
}
