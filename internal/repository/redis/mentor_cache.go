package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const visibleMentorsKey = "mentors:visible"

// MentorCache keeps the visible mentor pool in Redis for a short time.
// Redis failures fall through to the wrapped repository.
type MentorCache struct {
	next   repository.MentorRepository
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewMentorCache(next repository.MentorRepository, client *goredis.Client, ttl time.Duration, logger *slog.Logger) *MentorCache {
	return &MentorCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *MentorCache) ListVisible(ctx context.Context) ([]*domain.MentorProfile, error) {
	raw, err := c.client.Get(ctx, visibleMentorsKey).Bytes()
	if err == nil {
		var mentors []*domain.MentorProfile
		if err := json.Unmarshal(raw, &mentors); err == nil {
			return mentors, nil
		}
		c.logger.Warn("discarding undecodable mentor cache entry")
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.Warn("mentor cache read failed", slog.Any("error", err))
	}

	mentors, err := c.next.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(mentors)
	if err != nil {
		return mentors, nil
	}
	if err := c.client.Set(ctx, visibleMentorsKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("mentor cache write failed", slog.Any("error", err))
	}
	return mentors, nil
}

// GetByID always reads through; single lookups gate request creation and
// must see visibility changes immediately.
func (c *MentorCache) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorProfile, error) {
	return c.next.GetByID(ctx, id)
}
