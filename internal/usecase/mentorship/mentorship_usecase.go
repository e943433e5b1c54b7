package mentorship

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/matching"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
)

const dashboardLink = "/dashboard"

// IntroWriter drafts the opening message of a mentorship request.
type IntroWriter interface {
	GenerateIntroduction(ctx context.Context, brief domain.IntroductionBrief) (string, error)
}

type MentorshipUseCase struct {
	requestRepo      repository.RequestRepository
	transactor       repository.Transactor
	notificationRepo repository.NotificationRepository
	mentorRepo       repository.MentorRepository
	founderRepo      repository.FounderRepository
	startupRepo      repository.StartupRepository
	scorer           matching.Scorer
	introWriter      IntroWriter
	logger           *slog.Logger
}

func NewMentorshipUseCase(
	requestRepo repository.RequestRepository,
	transactor repository.Transactor,
	notificationRepo repository.NotificationRepository,
	mentorRepo repository.MentorRepository,
	founderRepo repository.FounderRepository,
	startupRepo repository.StartupRepository,
	scorer matching.Scorer,
	introWriter IntroWriter,
	logger *slog.Logger,
) *MentorshipUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &MentorshipUseCase{
		requestRepo:      requestRepo,
		transactor:       transactor,
		notificationRepo: notificationRepo,
		mentorRepo:       mentorRepo,
		founderRepo:      founderRepo,
		startupRepo:      startupRepo,
		scorer:           scorer,
		introWriter:      introWriter,
		logger:           logger,
	}
}

// SendRequestInput is the body of a new mentorship request
type SendRequestInput struct {
	MentorID uuid.UUID `json:"mentor_id" binding:"required"`
	Message  string    `json:"message" binding:"max=2000"`
}

// RespondInput carries the mentor's decision
type RespondInput struct {
	Status domain.RequestStatus `json:"status" binding:"required,response_status"`
}

// RespondResult is the outcome of a response. Connection is set only for
// accepted requests.
type RespondResult struct {
	Request    *domain.MentorshipRequest    `json:"request"`
	Connection *domain.MentorshipConnection `json:"connection,omitempty"`
}

// SendRequest records a pending request from a founder to a mentor and
// notifies the mentor.
func (uc *MentorshipUseCase) SendRequest(ctx context.Context, founderID uuid.UUID, in *SendRequestInput) (*domain.MentorshipRequest, error) {
	if founderID == in.MentorID {
		return nil, domain.ErrCannotRequestSelf
	}

	founder, err := uc.founderRepo.GetProfile(ctx, founderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load founder profile: %w", err)
	}
	if founder.Role != domain.RoleFounder {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.mentorRepo.GetByID(ctx, in.MentorID); err != nil {
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	pending, err := uc.requestRepo.HasPendingRequest(ctx, founderID, in.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if pending {
		return nil, domain.ErrDuplicateRequest
	}

	req := &domain.MentorshipRequest{
		FounderID: founderID,
		MentorID:  in.MentorID,
		Message:   strings.TrimSpace(in.Message),
		Status:    domain.RequestPending,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create mentorship request: %w", err)
	}

	uc.notify(ctx, &domain.Notification{
		UserID:  in.MentorID,
		Type:    domain.NotificationTypeRequest,
		Title:   "New Mentorship Request",
		Message: "You have received a new mentorship request",
		Link:    dashboardLink,
	})

	return req, nil
}

// RespondToRequest lets the addressed mentor accept or decline a pending
// request. Accepting creates the connection between both parties.
func (uc *MentorshipUseCase) RespondToRequest(ctx context.Context, mentorID, requestID uuid.UUID, status domain.RequestStatus) (*RespondResult, error) {
	if !status.IsResponse() {
		return nil, domain.ErrInvalidStatus
	}

	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentorship request: %w", err)
	}
	if req.MentorID != mentorID {
		return nil, domain.ErrForbidden
	}
	if !req.CanTransition(status) {
		return nil, domain.ErrRequestNotPending
	}

	// The status change and the connection commit together, so an accepted
	// request always has its connection.
	result := &RespondResult{Request: req}
	err = uc.transactor.WithTx(ctx, func(tx repository.TxRepositories) error {
		if err := tx.Requests.Transition(ctx, req, status); err != nil {
			return fmt.Errorf("failed to update mentorship request: %w", err)
		}
		if status != domain.RequestAccepted {
			return nil
		}

		conn := &domain.MentorshipConnection{
			FounderID: req.FounderID,
			MentorID:  req.MentorID,
			RequestID: req.ID,
			Status:    domain.ConnectionActive,
		}
		if err := tx.Connections.Create(ctx, conn); err != nil {
			return fmt.Errorf("failed to create mentorship connection: %w", err)
		}
		result.Connection = conn
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "Declined"
	if status == domain.RequestAccepted {
		outcome = "Accepted"
	}
	uc.notify(ctx, &domain.Notification{
		UserID:  req.FounderID,
		Type:    domain.NotificationTypeRequest,
		Title:   "Mentorship Request " + outcome,
		Message: fmt.Sprintf("Your mentorship request has been %s", status),
		Link:    dashboardLink,
	})

	return result, nil
}

// CancelRequest withdraws a founder's own pending request.
func (uc *MentorshipUseCase) CancelRequest(ctx context.Context, founderID, requestID uuid.UUID) (*domain.MentorshipRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentorship request: %w", err)
	}
	if req.FounderID != founderID {
		return nil, domain.ErrForbidden
	}
	if !req.CanTransition(domain.RequestCancelled) {
		return nil, domain.ErrRequestNotPending
	}

	if err := uc.requestRepo.Transition(ctx, req, domain.RequestCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel mentorship request: %w", err)
	}

	uc.notify(ctx, &domain.Notification{
		UserID:  req.MentorID,
		Type:    domain.NotificationTypeRequest,
		Title:   "Mentorship Request Cancelled",
		Message: "A founder has withdrawn their mentorship request",
		Link:    dashboardLink,
	})

	return req, nil
}

// ListRequests returns the requests a user takes part in, newest first,
// with both participants. The founder's startup is only included for the
// request's mentor.
func (uc *MentorshipUseCase) ListRequests(ctx context.Context, userID uuid.UUID, filter repository.RequestFilter) ([]*domain.RequestView, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	views, err := uc.requestRepo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentorship requests: %w", err)
	}
	if views == nil {
		views = []*domain.RequestView{}
	}
	for _, v := range views {
		if v.MentorID != userID {
			v.Startup = nil
		}
	}
	return views, nil
}

// DraftIntroduction suggests a request message for the founder. When no
// writer is configured or it fails, a template built from the match reasons
// is returned instead.
func (uc *MentorshipUseCase) DraftIntroduction(ctx context.Context, founderID, mentorID uuid.UUID) (string, error) {
	founder, err := uc.founderRepo.GetProfile(ctx, founderID)
	if err != nil {
		return "", fmt.Errorf("failed to load founder profile: %w", err)
	}
	startup, err := uc.startupRepo.GetByFounderID(ctx, founderID)
	if err != nil {
		return "", fmt.Errorf("failed to load startup profile: %w", err)
	}
	mentor, err := uc.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return "", fmt.Errorf("failed to load mentor: %w", err)
	}

	match := uc.scorer.Score(mentor, startup)
	brief := domain.IntroductionBrief{
		FounderName: founder.FullName,
		StartupName: startup.StartupName,
		Sector:      startup.Sector,
		Stage:       startup.Stage,
		Needs:       startup.MentorshipAreas,
		MentorName:  mentor.FullName,
		MentorTitle: mentor.Title,
		Reasons:     match.Reasons,
	}

	if uc.introWriter != nil {
		text, err := uc.introWriter.GenerateIntroduction(ctx, brief)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			uc.logger.Warn("introduction writer failed, using template",
				slog.String("founder_id", founderID.String()),
				slog.String("mentor_id", mentorID.String()),
				slog.Any("error", err),
			)
		}
	}

	return TemplateIntroduction(brief), nil
}

// TemplateIntroduction renders a plain introduction from the brief.
func TemplateIntroduction(b domain.IntroductionBrief) string {
	var sb strings.Builder

	greeting := "Hi"
	if first, _, _ := strings.Cut(strings.TrimSpace(b.MentorName), " "); first != "" {
		greeting += " " + first
	}
	sb.WriteString(greeting + ",\n\n")

	intro := "I'm"
	if b.FounderName != "" {
		intro += " " + b.FounderName + ","
	}
	intro += " founder of " + nonEmpty(b.StartupName, "an early-stage startup")
	switch {
	case b.Sector != "" && b.Stage.IsValid():
		intro += fmt.Sprintf(", a %s company at the %s", b.Sector, strings.ToLower(b.Stage.Label()))
	case b.Sector != "":
		intro += fmt.Sprintf(", a %s company", b.Sector)
	}
	sb.WriteString(intro + ".")

	if len(b.Needs) > 0 {
		sb.WriteString(" We are looking for guidance on " + strings.Join(b.Needs, ", ") + ".")
	}

	if len(b.Reasons) > 0 {
		sb.WriteString("\n\nI reached out because of your profile: " + strings.ToLower(strings.Join(b.Reasons, "; ")) + ".")
	}

	sb.WriteString("\n\nWould you be open to mentoring us?")
	return sb.String()
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// notify stores a notification. The primary write has already succeeded at
// this point, so failures are only logged.
func (uc *MentorshipUseCase) notify(ctx context.Context, n *domain.Notification) {
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		uc.logger.Warn("failed to create notification",
			slog.String("user_id", n.UserID.String()),
			slog.String("title", n.Title),
			slog.Any("error", err),
		)
	}
}
