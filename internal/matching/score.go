package matching

import (
	"slices"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

const (
	WeightSector    = 40.0
	WeightStage     = 25.0
	WeightExpertise = 30.0

	LocationExact   = 15.0
	LocationCountry = 10.0
	LocationRegion  = 5.0
)

// SectorScore is binary: the full weight when the mentor covers the sector.
func SectorScore(mentorSectors []string, sector string) float64 {
	if len(mentorSectors) == 0 || sector == "" {
		return 0
	}
	if slices.Contains(mentorSectors, sector) {
		return WeightSector
	}
	return 0
}

// StageScore is binary: the full weight when the mentor prefers the stage.
func StageScore(mentorStages []string, stage domain.Stage) float64 {
	if len(mentorStages) == 0 || stage == "" {
		return 0
	}
	if slices.Contains(mentorStages, string(stage)) {
		return WeightStage
	}
	return 0
}

// ExpertiseScore scales the weight by the share of founder needs the mentor
// covers. The denominator is the number of needs, not the mentor's tag count.
func ExpertiseScore(mentorExpertise, needs []string) float64 {
	if len(mentorExpertise) == 0 || len(needs) == 0 {
		return 0
	}
	covered := len(Overlap(mentorExpertise, needs))
	return float64(covered) / float64(max(len(needs), 1)) * WeightExpertise
}

// LocationScore returns the first matching tier: exact location, same
// country, same region.
func LocationScore(mentorLocation, startupLocation string, regions RegionTable) float64 {
	if mentorLocation == "" || startupLocation == "" {
		return 0
	}
	if mentorLocation == startupLocation {
		return LocationExact
	}
	mentorCountry := domain.CountryOf(mentorLocation)
	startupCountry := domain.CountryOf(startupLocation)
	if mentorCountry == startupCountry {
		return LocationCountry
	}
	if regions.SameRegion(mentorCountry, startupCountry) {
		return LocationRegion
	}
	return 0
}

// Overlap returns the distinct items of have that appear in want, in the
// order of have.
func Overlap(have, want []string) []string {
	if len(have) == 0 || len(want) == 0 {
		return nil
	}
	var out []string
	seen := make(map[string]struct{}, len(have))
	for _, h := range have {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		if slices.Contains(want, h) {
			out = append(out, h)
		}
	}
	return out
}
