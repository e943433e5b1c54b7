package matching

import (
	"testing"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fintechStartup() *domain.StartupProfile {
	return &domain.StartupProfile{
		StartupName:     "PayGo",
		Sector:          "Fintech",
		Stage:           domain.StageGrowth,
		Location:        "Nairobi, Kenya",
		MentorshipAreas: []string{"Fundraising"},
	}
}

func TestScore_FullMatch(t *testing.T) {
	mentor := &domain.MentorProfile{
		ID:                 uuid.New(),
		Sectors:            []string{"Fintech"},
		StagePreference:    []string{"growth"},
		Expertise:          []string{"Fundraising", "Sales"},
		Location:           "Nairobi, Kenya",
		YearsExperience:    12,
		AdvisoryExperience: true,
	}

	got := NewScorer(DefaultRegions()).Score(mentor, fintechStartup())

	assert.Equal(t, 110, got.Score)
	assert.Equal(t, []string{
		"Expert in Fintech",
		"Experienced with Growth Stage startups",
		"Can help with Fundraising",
		"Based in Kenya",
		"Experienced advisor and investor",
		"12+ years of experience",
	}, got.Reasons)
	assert.Equal(t, Breakdown{Sector: 40, Stage: 25, Expertise: 30, Location: 15}, got.Breakdown)
	assert.Same(t, mentor, got.Mentor)
}

func TestScore_NoMatch(t *testing.T) {
	mentor := &domain.MentorProfile{
		Sectors:         []string{"Healthtech"},
		StagePreference: []string{"idea"},
		Location:        "Lagos, Nigeria",
	}

	got := NewScorer(DefaultRegions()).Score(mentor, fintechStartup())

	assert.Equal(t, 0, got.Score)
	assert.Empty(t, got.Reasons)
}

func TestScore_MissingLocations(t *testing.T) {
	mentor := &domain.MentorProfile{Sectors: []string{"Fintech"}}
	startup := &domain.StartupProfile{Sector: "Fintech"}

	got := Scorer{}.Score(mentor, startup)

	assert.Equal(t, 40, got.Score)
	assert.Zero(t, got.Breakdown.Location)
}

func TestScore_BlankCountrySegments(t *testing.T) {
	mentor := &domain.MentorProfile{Location: "Nairobi,"}
	startup := &domain.StartupProfile{Location: "Mombasa,"}

	got := NewScorer(DefaultRegions()).Score(mentor, startup)

	assert.Equal(t, 10, got.Score)
	assert.Empty(t, got.Reasons)
}

func TestScore_RoundsFractionalExpertise(t *testing.T) {
	mentor := &domain.MentorProfile{Expertise: []string{"Sales"}}
	startup := &domain.StartupProfile{MentorshipAreas: []string{"Sales", "Legal", "Hiring"}}

	got := Scorer{}.Score(mentor, startup)

	assert.InDelta(t, 10.0, got.Breakdown.Expertise, 1e-9)
	assert.Equal(t, 10, got.Score)

	startup.MentorshipAreas = []string{"Sales", "Legal", "Hiring", "Product", "Marketing", "Ops", "Tech"}
	got = Scorer{}.Score(mentor, startup)
	assert.Equal(t, 4, got.Score) // 30/7 ≈ 4.29
}

func TestReasons_Rules(t *testing.T) {
	startup := &domain.StartupProfile{
		Sector:          "Edtech",
		Stage:           domain.StageMVP,
		MentorshipAreas: []string{"Product", "Sales", "Hiring"},
	}

	t.Run("expertise at half weight is not explained", func(t *testing.T) {
		mentor := &domain.MentorProfile{Expertise: []string{"Product"}}
		reasons := Reasons(mentor, startup, Breakdown{Expertise: 15})
		assert.Empty(t, reasons)
	})

	t.Run("only first two common areas", func(t *testing.T) {
		mentor := &domain.MentorProfile{Expertise: []string{"Hiring", "Sales", "Product"}}
		reasons := Reasons(mentor, startup, Breakdown{Expertise: 30})
		assert.Equal(t, []string{"Can help with Hiring and Sales"}, reasons)
	})

	t.Run("region tier is not explained", func(t *testing.T) {
		mentor := &domain.MentorProfile{Location: "Kampala, Uganda"}
		assert.Empty(t, Reasons(mentor, startup, Breakdown{Location: 5}))
		assert.Equal(t, []string{"Based in Uganda"}, Reasons(mentor, startup, Breakdown{Location: 10}))
	})

	t.Run("mentor attributes", func(t *testing.T) {
		mentor := &domain.MentorProfile{ProBono: true, YearsExperience: 9}
		assert.Equal(t, []string{"Offers pro bono sessions"}, Reasons(mentor, startup, Breakdown{}))

		mentor.YearsExperience = 10
		assert.Equal(t, []string{"Offers pro bono sessions", "10+ years of experience"}, Reasons(mentor, startup, Breakdown{}))
	})

	t.Run("stage label", func(t *testing.T) {
		reasons := Reasons(&domain.MentorProfile{}, startup, Breakdown{Sector: 40, Stage: 25})
		assert.Equal(t, []string{"Expert in Edtech", "Experienced with Early Stage startups"}, reasons)
	})
}

func TestRank(t *testing.T) {
	startup := fintechStartup()
	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	idC := uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	idD := uuid.MustParse("00000000-0000-0000-0000-00000000000d")

	mentors := []*domain.MentorProfile{
		{ID: idD, Sectors: []string{"Fintech"}, YearsExperience: 3},
		{ID: idC, StagePreference: []string{"growth"}, YearsExperience: 20},
		{ID: idB, Sectors: []string{"Fintech"}, YearsExperience: 8},
		{ID: idA, Sectors: []string{"Fintech"}, YearsExperience: 8},
	}

	ranked := NewScorer(DefaultRegions()).Rank(mentors, startup, 10)
	require.Len(t, ranked, 4)

	var order []uuid.UUID
	for i, m := range ranked {
		order = append(order, m.Mentor.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Score, m.Score)
		}
	}
	assert.Equal(t, []uuid.UUID{idA, idB, idD, idC}, order)

	top := NewScorer(nil).Rank(mentors, startup, 2)
	require.Len(t, top, 2)
	assert.Equal(t, idA, top[0].Mentor.ID)

	assert.Empty(t, NewScorer(nil).Rank(nil, startup, 10))
}
