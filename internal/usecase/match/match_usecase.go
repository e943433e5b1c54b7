package match

import (
	"context"
	"fmt"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/matching"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Limits bounds the number of matches returned per call.
type Limits struct {
	Default int
	Max     int
}

type MatchUseCase struct {
	founderRepo repository.FounderRepository
	startupRepo repository.StartupRepository
	mentorRepo  repository.MentorRepository
	requestRepo repository.RequestRepository
	scorer      matching.Scorer
	limits      Limits
}

func NewMatchUseCase(
	founderRepo repository.FounderRepository,
	startupRepo repository.StartupRepository,
	mentorRepo repository.MentorRepository,
	requestRepo repository.RequestRepository,
	scorer matching.Scorer,
	limits Limits,
) *MatchUseCase {
	if limits.Max <= 0 {
		limits.Max = MaxLimit
	}
	if limits.Default <= 0 {
		limits.Default = DefaultLimit
	}
	if limits.Default > limits.Max {
		limits.Default = limits.Max
	}
	return &MatchUseCase{
		founderRepo: founderRepo,
		startupRepo: startupRepo,
		mentorRepo:  mentorRepo,
		requestRepo: requestRepo,
		scorer:      scorer,
		limits:      limits,
	}
}

// FindMatches ranks the mentors the founder has not contacted yet.
func (uc *MatchUseCase) FindMatches(ctx context.Context, founderID uuid.UUID, limit int) ([]matching.MatchScore, error) {
	startup, err := uc.loadStartup(ctx, founderID)
	if err != nil {
		return nil, err
	}

	mentors, err := uc.mentorRepo.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentors: %w", err)
	}
	if len(mentors) == 0 {
		return []matching.MatchScore{}, nil
	}

	requestedIDs, err := uc.requestRepo.ListRequestedMentorIDs(ctx, founderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing requests: %w", err)
	}

	excluded := make(map[uuid.UUID]struct{}, len(requestedIDs)+1)
	excluded[founderID] = struct{}{}
	for _, id := range requestedIDs {
		excluded[id] = struct{}{}
	}

	candidates := matching.ExcludeRequested(mentors, excluded)
	return uc.scorer.Rank(candidates, startup, uc.clampLimit(limit)), nil
}

// GetMatch explains how a single mentor scores for the founder.
func (uc *MatchUseCase) GetMatch(ctx context.Context, founderID, mentorID uuid.UUID) (*matching.MatchScore, error) {
	startup, err := uc.loadStartup(ctx, founderID)
	if err != nil {
		return nil, err
	}

	mentor, err := uc.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	match := uc.scorer.Score(mentor, startup)
	return &match, nil
}

// ListMentors returns the browsable mentors accepted by filter, most
// experienced first. Nothing is scored here.
func (uc *MatchUseCase) ListMentors(ctx context.Context, filter matching.MentorFilter) ([]*domain.MentorProfile, error) {
	mentors, err := uc.mentorRepo.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentors: %w", err)
	}

	result := filter.Apply(mentors)
	matching.SortByExperience(result)
	return result, nil
}

func (uc *MatchUseCase) loadStartup(ctx context.Context, founderID uuid.UUID) (*domain.StartupProfile, error) {
	if _, err := uc.founderRepo.GetProfile(ctx, founderID); err != nil {
		return nil, fmt.Errorf("failed to load founder profile: %w", err)
	}

	startup, err := uc.startupRepo.GetByFounderID(ctx, founderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load startup profile: %w", err)
	}
	return startup, nil
}

func (uc *MatchUseCase) clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return uc.limits.Default
	case limit > uc.limits.Max:
		return uc.limits.Max
	default:
		return limit
	}
}
