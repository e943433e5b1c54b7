package mentorship

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/matching"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/memory"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/match"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memory.Store
	uc        *MentorshipUseCase
	founderID uuid.UUID
	mentorID  uuid.UUID
}

func newFixture(t *testing.T, writer IntroWriter) *fixture {
	t.Helper()

	f := &fixture{
		store:     memory.NewStore(),
		founderID: uuid.New(),
		mentorID:  uuid.New(),
	}
	f.store.PutFounder(domain.FounderProfile{ID: f.founderID, FullName: "Wanjiru Kamau"}, &domain.StartupProfile{
		StartupName:     "PayGo",
		Sector:          "Fintech",
		Stage:           domain.StageGrowth,
		Location:        "Nairobi, Kenya",
		MentorshipAreas: []string{"Fundraising"},
	})
	f.store.PutMentor(domain.MentorProfile{
		ID: f.mentorID, FullName: "Achieng Otieno", Title: "Partner", ProfileVisibility: true,
		Sectors: []string{"Fintech"}, StagePreference: []string{"growth"},
		Expertise: []string{"Fundraising"}, Location: "Nairobi, Kenya", YearsExperience: 12,
	}, true)

	f.uc = f.newUseCase(f.store.NotificationRepository(), writer)
	return f
}

func (f *fixture) newUseCase(notifications repository.NotificationRepository, writer IntroWriter) *MentorshipUseCase {
	return f.build(f.store.Transactor(), notifications, writer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (f *fixture) build(tx repository.Transactor, notifications repository.NotificationRepository, writer IntroWriter, logger *slog.Logger) *MentorshipUseCase {
	return NewMentorshipUseCase(
		f.store.RequestRepository(),
		tx,
		notifications,
		f.store.MentorRepository(),
		f.store.FounderRepository(),
		f.store.StartupRepository(),
		matching.NewScorer(matching.DefaultRegions()),
		writer,
		logger,
	)
}

func (f *fixture) send(t *testing.T) *domain.MentorshipRequest {
	t.Helper()
	req, err := f.uc.SendRequest(context.Background(), f.founderID, &SendRequestInput{
		MentorID: f.mentorID,
		Message:  "  Would love your help with our Series A  ",
	})
	require.NoError(t, err)
	return req
}

func TestSendRequest(t *testing.T) {
	f := newFixture(t, nil)

	req := f.send(t)

	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, "Would love your help with our Series A", req.Message)
	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.Nil(t, req.RespondedAt)

	notes := f.store.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, f.mentorID, notes[0].UserID)
	assert.Equal(t, "request", notes[0].Type)
	assert.Equal(t, "New Mentorship Request", notes[0].Title)
	assert.Equal(t, "You have received a new mentorship request", notes[0].Message)
	assert.Equal(t, "/dashboard", notes[0].Link)
}

func TestSendRequest_ExcludedFromLaterMatches(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t)

	matcher := match.NewMatchUseCase(
		f.store.FounderRepository(),
		f.store.StartupRepository(),
		f.store.MentorRepository(),
		f.store.RequestRepository(),
		matching.NewScorer(matching.DefaultRegions()),
		match.Limits{},
	)
	matches, err := matcher.FindMatches(context.Background(), f.founderID, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSendRequest_Rejections(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.SendRequest(ctx, f.founderID, &SendRequestInput{MentorID: f.founderID})
	assert.ErrorIs(t, err, domain.ErrCannotRequestSelf)

	_, err = f.uc.SendRequest(ctx, f.founderID, &SendRequestInput{MentorID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrMentorNotFound)

	_, err = f.uc.SendRequest(ctx, uuid.New(), &SendRequestInput{MentorID: f.mentorID})
	assert.ErrorIs(t, err, domain.ErrFounderNotFound)

	mentorAsFounder := uuid.New()
	f.store.PutFounder(domain.FounderProfile{ID: mentorAsFounder, Role: domain.RoleMentor}, nil)
	_, err = f.uc.SendRequest(ctx, mentorAsFounder, &SendRequestInput{MentorID: f.mentorID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.send(t)
	_, err = f.uc.SendRequest(ctx, f.founderID, &SendRequestInput{MentorID: f.mentorID})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestSendRequest_AfterDeclineIsAllowed(t *testing.T) {
	f := newFixture(t, nil)
	req := f.send(t)

	_, err := f.uc.RespondToRequest(context.Background(), f.mentorID, req.ID, domain.RequestDeclined)
	require.NoError(t, err)

	again := f.send(t)
	assert.NotEqual(t, req.ID, again.ID)
}

func TestRespondToRequest_Accept(t *testing.T) {
	f := newFixture(t, nil)
	req := f.send(t)

	result, err := f.uc.RespondToRequest(context.Background(), f.mentorID, req.ID, domain.RequestAccepted)
	require.NoError(t, err)

	assert.Equal(t, domain.RequestAccepted, result.Request.Status)
	assert.NotNil(t, result.Request.RespondedAt)
	require.NotNil(t, result.Connection)

	conns := f.store.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, f.founderID, conns[0].FounderID)
	assert.Equal(t, f.mentorID, conns[0].MentorID)
	assert.Equal(t, req.ID, conns[0].RequestID)
	assert.Equal(t, domain.ConnectionActive, conns[0].Status)

	notes := f.store.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, f.founderID, notes[1].UserID)
	assert.Equal(t, "Mentorship Request Accepted", notes[1].Title)
	assert.Equal(t, "Your mentorship request has been accepted", notes[1].Message)
}

func TestRespondToRequest_Decline(t *testing.T) {
	f := newFixture(t, nil)
	req := f.send(t)

	result, err := f.uc.RespondToRequest(context.Background(), f.mentorID, req.ID, domain.RequestDeclined)
	require.NoError(t, err)

	assert.Equal(t, domain.RequestDeclined, result.Request.Status)
	assert.Nil(t, result.Connection)
	assert.Empty(t, f.store.Connections())

	notes := f.store.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, "Mentorship Request Declined", notes[1].Title)
	assert.Equal(t, "Your mentorship request has been declined", notes[1].Message)
}

func TestRespondToRequest_Guards(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := f.send(t)

	_, err := f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.uc.RespondToRequest(ctx, f.mentorID, uuid.New(), domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = f.uc.RespondToRequest(ctx, f.founderID, req.ID, domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestAccepted)
	require.NoError(t, err)

	_, err = f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
	_, err = f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestDeclined)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)

	assert.Len(t, f.store.Connections(), 1)
}

func TestRespondToRequest_ConcurrentResponsesCreateOneConnection(t *testing.T) {
	f := newFixture(t, nil)
	req := f.send(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RespondToRequest(context.Background(), f.mentorID, req.ID, domain.RequestAccepted)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrRequestNotPending)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.Connections(), 1)
}

type failingNotifications struct{}

func (failingNotifications) Create(context.Context, *domain.Notification) error {
	return errors.New("notifications table locked")
}

func TestNotificationFailureDoesNotFailWorkflow(t *testing.T) {
	f := newFixture(t, nil)
	var logs bytes.Buffer
	uc := f.build(f.store.Transactor(), failingNotifications{}, nil, slog.New(slog.NewJSONHandler(&logs, nil)))

	req, err := uc.SendRequest(context.Background(), f.founderID, &SendRequestInput{MentorID: f.mentorID})
	require.NoError(t, err)

	_, err = uc.RespondToRequest(context.Background(), f.mentorID, req.ID, domain.RequestAccepted)
	require.NoError(t, err)
	assert.Len(t, f.store.Connections(), 1)

	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), "failed to create notification")
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}

type failingConnections struct{}

func (failingConnections) Create(context.Context, *domain.MentorshipConnection) error {
	return errors.New("connection insert failed")
}

// failingConnectionsTx runs the real transaction but swaps in a connection
// repository whose inserts fail.
type failingConnectionsTx struct {
	next repository.Transactor
}

func (t failingConnectionsTx) WithTx(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	return t.next.WithTx(ctx, func(tx repository.TxRepositories) error {
		tx.Connections = failingConnections{}
		return fn(tx)
	})
}

func TestRespondToRequest_AcceptRollsBackWhenConnectionFails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := f.send(t)

	broken := f.build(failingConnectionsTx{f.store.Transactor()}, f.store.NotificationRepository(), nil, nil)
	_, err := broken.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestAccepted)
	require.Error(t, err)

	stored, err := f.store.RequestRepository().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, stored.Status)
	assert.Nil(t, stored.RespondedAt)
	assert.Empty(t, f.store.Connections())
	// only the mentor's request notification, no outcome for the founder
	assert.Len(t, f.store.Notifications(), 1)

	// the request can still be accepted once inserts work again
	result, err := f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestAccepted)
	require.NoError(t, err)
	require.NotNil(t, result.Connection)
	assert.Len(t, f.store.Connections(), 1)
}

func TestCancelRequest(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := f.send(t)

	_, err := f.uc.CancelRequest(ctx, f.mentorID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cancelled, err := f.uc.CancelRequest(ctx, f.founderID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCancelled, cancelled.Status)

	_, err = f.uc.RespondToRequest(ctx, f.mentorID, req.ID, domain.RequestAccepted)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)

	_, err = f.uc.CancelRequest(ctx, f.founderID, req.ID)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestListRequests(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := f.send(t)

	mine, err := f.uc.ListRequests(ctx, f.founderID, repository.RequestFilter{Role: domain.RoleFounder})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, req.ID, mine[0].ID)
	assert.Equal(t, "Achieng Otieno", mine[0].Mentor.FullName)
	assert.Equal(t, "Partner", mine[0].Mentor.Title)
	assert.Equal(t, "Wanjiru Kamau", mine[0].Founder.FullName)
	assert.Nil(t, mine[0].Startup)

	incoming, err := f.uc.ListRequests(ctx, f.mentorID, repository.RequestFilter{Role: domain.RoleMentor})
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, f.founderID, incoming[0].Founder.ID)
	assert.Equal(t, "Wanjiru Kamau", incoming[0].Founder.FullName)
	require.NotNil(t, incoming[0].Startup)
	assert.Equal(t, "PayGo", incoming[0].Startup.StartupName)
	assert.Equal(t, "Fintech", incoming[0].Startup.Sector)
	assert.Equal(t, domain.StageGrowth, incoming[0].Startup.Stage)

	asMentor, err := f.uc.ListRequests(ctx, f.founderID, repository.RequestFilter{Role: domain.RoleMentor})
	require.NoError(t, err)
	assert.Empty(t, asMentor)
	assert.NotNil(t, asMentor)

	accepted, err := f.uc.ListRequests(ctx, f.mentorID, repository.RequestFilter{Status: domain.RequestAccepted})
	require.NoError(t, err)
	assert.Empty(t, accepted)

	_, err = f.uc.ListRequests(ctx, f.mentorID, repository.RequestFilter{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

type stubWriter struct {
	text  string
	err   error
	brief domain.IntroductionBrief
}

func (w *stubWriter) GenerateIntroduction(_ context.Context, brief domain.IntroductionBrief) (string, error) {
	w.brief = brief
	return w.text, w.err
}

func TestDraftIntroduction_UsesWriter(t *testing.T) {
	writer := &stubWriter{text: " Hello from the model "}
	f := newFixture(t, writer)

	text, err := f.uc.DraftIntroduction(context.Background(), f.founderID, f.mentorID)
	require.NoError(t, err)
	assert.Equal(t, "Hello from the model", text)
	assert.Equal(t, "PayGo", writer.brief.StartupName)
	assert.Contains(t, writer.brief.Reasons, "Expert in Fintech")
}

func TestDraftIntroduction_FallsBackToTemplate(t *testing.T) {
	f := newFixture(t, &stubWriter{err: errors.New("quota exceeded")})

	text, err := f.uc.DraftIntroduction(context.Background(), f.founderID, f.mentorID)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi Achieng,")
	assert.Contains(t, text, "I'm Wanjiru Kamau, founder of PayGo, a Fintech company at the growth stage.")
	assert.Contains(t, text, "guidance on Fundraising")
	assert.Contains(t, text, "expert in fintech")
}

func TestDraftIntroduction_NoWriter(t *testing.T) {
	f := newFixture(t, nil)

	text, err := f.uc.DraftIntroduction(context.Background(), f.founderID, f.mentorID)
	require.NoError(t, err)
	assert.Contains(t, text, "Would you be open to mentoring us?")

	_, err = f.uc.DraftIntroduction(context.Background(), f.founderID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrMentorNotFound)
}

func TestTemplateIntroduction_MinimalBrief(t *testing.T) {
	text := TemplateIntroduction(domain.IntroductionBrief{})
	assert.Equal(t, "Hi,\n\nI'm founder of an early-stage startup.\n\nWould you be open to mentoring us?", text)
}
