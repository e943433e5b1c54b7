package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
	RequestCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestAccepted || s == RequestDeclined || s == RequestCancelled
}

func (s RequestStatus) IsValid() bool {
	return s == RequestPending || s.IsTerminal()
}

// IsResponse reports whether a mentor may answer with this status.
func (s RequestStatus) IsResponse() bool {
	return s == RequestAccepted || s == RequestDeclined
}

type MentorshipRequest struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	FounderID   uuid.UUID     `json:"founder_id" db:"founder_id"`
	MentorID    uuid.UUID     `json:"mentor_id" db:"mentor_id"`
	Message     string        `json:"message" db:"message"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	RespondedAt *time.Time    `json:"responded_at" db:"responded_at"`
}

// CanTransition checks the pending-only rule of the request lifecycle.
func (r *MentorshipRequest) CanTransition(to RequestStatus) bool {
	return r.Status == RequestPending && to.IsTerminal()
}

func (r *MentorshipRequest) HasParticipant(userID uuid.UUID) bool {
	return r.FounderID == userID || r.MentorID == userID
}

// RequestParty is the public card of one side of a request.
type RequestParty struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	PhotoURL     *string   `json:"photo_url"`
	Bio          string    `json:"bio"`
	Title        string    `json:"title,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Location     string    `json:"location"`
}

// RequestView is a request as listed to one of its participants. Startup is
// only shown to the mentor.
type RequestView struct {
	MentorshipRequest
	Founder RequestParty    `json:"founder"`
	Mentor  RequestParty    `json:"mentor"`
	Startup *StartupProfile `json:"startup,omitempty"`
}

// IntroductionBrief is what an introduction writer knows about a prospective
// founder/mentor pair.
type IntroductionBrief struct {
	FounderName string
	StartupName string
	Sector      string
	Stage       Stage
	Needs       []string
	MentorName  string
	MentorTitle string
	Reasons     []string
}
