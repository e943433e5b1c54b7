package repository

import (
	"context"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/google/uuid"
)

type FounderRepository interface {
	GetProfile(ctx context.Context, founderID uuid.UUID) (*domain.FounderProfile, error)
}

type StartupRepository interface {
	GetByFounderID(ctx context.Context, founderID uuid.UUID) (*domain.StartupProfile, error)
}

// MentorRepository reads mentors that are visible and finished onboarding.
type MentorRepository interface {
	ListVisible(ctx context.Context) ([]*domain.MentorProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorProfile, error)
}

// RequestFilter narrows ListForUser. Zero values mean no restriction.
type RequestFilter struct {
	Role   domain.Role
	Status domain.RequestStatus
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.MentorshipRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error)
	// ListRequestedMentorIDs returns every mentor the founder has contacted, any status.
	ListRequestedMentorIDs(ctx context.Context, founderID uuid.UUID) ([]uuid.UUID, error)
	HasPendingRequest(ctx context.Context, founderID, mentorID uuid.UUID) (bool, error)
	// Transition moves a pending request to status. It returns
	// domain.ErrRequestNotPending when the request is no longer pending.
	Transition(ctx context.Context, req *domain.MentorshipRequest, status domain.RequestStatus) error
	// ListForUser returns the requests joined with both participants and the
	// founder's startup, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, filter RequestFilter) ([]*domain.RequestView, error)
}

type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.MentorshipConnection) error
}

// TxRepositories are bound to a single transaction.
type TxRepositories struct {
	Requests    RequestRepository
	Connections ConnectionRepository
}

// Transactor runs fn in a transaction. Writes made through the given
// repositories are committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx TxRepositories) error) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
}
