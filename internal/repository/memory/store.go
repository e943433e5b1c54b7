// Package memory keeps all repositories in process memory. It backs the
// "memory" storage type used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/google/uuid"
)

type mentorRecord struct {
	profile   domain.MentorProfile
	onboarded bool
}

type Store struct {
	mu            sync.RWMutex
	founders      map[uuid.UUID]domain.FounderProfile
	startups      map[uuid.UUID]domain.StartupProfile
	mentors       []*mentorRecord
	requests      []*domain.MentorshipRequest
	connections   []*domain.MentorshipConnection
	notifications []*domain.Notification
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		founders: make(map[uuid.UUID]domain.FounderProfile),
		startups: make(map[uuid.UUID]domain.StartupProfile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PutFounder stores a founder and, when startup is not nil, their startup.
func (s *Store) PutFounder(f domain.FounderProfile, startup *domain.StartupProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Role == "" {
		f.Role = domain.RoleFounder
	}
	s.founders[f.ID] = f
	if startup != nil {
		st := *startup
		st.FounderID = f.ID
		if st.ID == uuid.Nil {
			st.ID = uuid.New()
		}
		s.startups[f.ID] = st
	}
}

// PutMentor stores a mentor in insertion order. ProBono follows the rate,
// as the generated column does in postgres.
func (s *Store) PutMentor(m domain.MentorProfile, onboarded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ProBono = m.RatePerHour == 0

	for _, rec := range s.mentors {
		if rec.profile.ID == m.ID {
			rec.profile = m
			rec.onboarded = onboarded
			return
		}
	}
	s.mentors = append(s.mentors, &mentorRecord{profile: m, onboarded: onboarded})
}

func (s *Store) Connections() []domain.MentorshipConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MentorshipConnection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, *c)
	}
	return out
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

func (s *Store) FounderRepository() repository.FounderRepository           { return founderRepo{s} }
func (s *Store) StartupRepository() repository.StartupRepository           { return startupRepo{s} }
func (s *Store) MentorRepository() repository.MentorRepository             { return mentorRepo{s} }
func (s *Store) RequestRepository() repository.RequestRepository           { return requestRepo{s: s} }
func (s *Store) NotificationRepository() repository.NotificationRepository { return notificationRepo{s} }
func (s *Store) Transactor() repository.Transactor                         { return transactor{s} }

var errDuplicateConnection = errors.New("connection for request already exists")

type transactor struct{ s *Store }

// WithTx holds the store lock for the whole of fn and restores requests and
// connections when fn fails.
func (t transactor) WithTx(_ context.Context, fn func(tx repository.TxRepositories) error) error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]domain.MentorshipRequest, len(s.requests))
	for i, req := range s.requests {
		saved[i] = *req
	}
	conns := len(s.connections)

	err := fn(repository.TxRepositories{
		Requests:    requestRepo{s: s, tx: true},
		Connections: connectionRepo{s: s, tx: true},
	})
	if err != nil {
		s.requests = s.requests[:len(saved)]
		for i := range saved {
			*s.requests[i] = saved[i]
		}
		s.connections = s.connections[:conns]
	}
	return err
}

// lock and rlock are no-ops inside a transaction, which already holds the
// write lock.
func lock(s *Store, tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func rlock(s *Store, tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

type founderRepo struct{ s *Store }

func (r founderRepo) GetProfile(_ context.Context, id uuid.UUID) (*domain.FounderProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.founders[id]
	if !ok {
		return nil, domain.ErrFounderNotFound
	}
	return &f, nil
}

type startupRepo struct{ s *Store }

func (r startupRepo) GetByFounderID(_ context.Context, founderID uuid.UUID) (*domain.StartupProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.startups[founderID]
	if !ok {
		return nil, domain.ErrStartupNotFound
	}
	st.MentorshipAreas = append([]string(nil), st.MentorshipAreas...)
	return &st, nil
}

type mentorRepo struct{ s *Store }

func (r mentorRepo) ListVisible(_ context.Context) ([]*domain.MentorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.MentorProfile, 0, len(r.s.mentors))
	for _, rec := range r.s.mentors {
		if rec.onboarded && rec.profile.ProfileVisibility {
			m := rec.profile
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r mentorRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.MentorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.mentors {
		if rec.profile.ID == id && rec.onboarded && rec.profile.ProfileVisibility {
			m := rec.profile
			return &m, nil
		}
	}
	return nil, domain.ErrMentorNotFound
}

type requestRepo struct {
	s  *Store
	tx bool
}

func (r requestRepo) Create(_ context.Context, req *domain.MentorshipRequest) error {
	defer lock(r.s, r.tx)()

	if req.Status == domain.RequestPending {
		for _, existing := range r.s.requests {
			if existing.FounderID == req.FounderID && existing.MentorID == req.MentorID && existing.Status == domain.RequestPending {
				return domain.ErrDuplicateRequest
			}
		}
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = r.s.now()

	stored := *req
	r.s.requests = append(r.s.requests, &stored)
	return nil
}

func (r requestRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	defer rlock(r.s, r.tx)()

	for _, req := range r.s.requests {
		if req.ID == id {
			cp := *req
			return &cp, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r requestRepo) ListRequestedMentorIDs(_ context.Context, founderID uuid.UUID) ([]uuid.UUID, error) {
	defer rlock(r.s, r.tx)()

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, req := range r.s.requests {
		if req.FounderID != founderID {
			continue
		}
		if _, ok := seen[req.MentorID]; ok {
			continue
		}
		seen[req.MentorID] = struct{}{}
		ids = append(ids, req.MentorID)
	}
	return ids, nil
}

func (r requestRepo) HasPendingRequest(_ context.Context, founderID, mentorID uuid.UUID) (bool, error) {
	defer rlock(r.s, r.tx)()

	for _, req := range r.s.requests {
		if req.FounderID == founderID && req.MentorID == mentorID && req.Status == domain.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r requestRepo) Transition(_ context.Context, req *domain.MentorshipRequest, status domain.RequestStatus) error {
	defer lock(r.s, r.tx)()

	for _, stored := range r.s.requests {
		if stored.ID != req.ID {
			continue
		}
		if stored.Status != domain.RequestPending {
			return domain.ErrRequestNotPending
		}
		now := r.s.now()
		stored.Status = status
		stored.RespondedAt = &now

		req.Status = status
		req.RespondedAt = &now
		return nil
	}
	return domain.ErrRequestNotFound
}

func (r requestRepo) ListForUser(_ context.Context, userID uuid.UUID, filter repository.RequestFilter) ([]*domain.RequestView, error) {
	defer rlock(r.s, r.tx)()

	var out []*domain.RequestView
	for _, req := range r.s.requests {
		switch filter.Role {
		case domain.RoleFounder:
			if req.FounderID != userID {
				continue
			}
		case domain.RoleMentor:
			if req.MentorID != userID {
				continue
			}
		default:
			if !req.HasParticipant(userID) {
				continue
			}
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, r.view(req))
	}

	// newest first; insertion order breaks ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// view joins a request with both parties, like the postgres query does.
func (r requestRepo) view(req *domain.MentorshipRequest) *domain.RequestView {
	v := &domain.RequestView{
		MentorshipRequest: *req,
		Founder:           domain.RequestParty{ID: req.FounderID},
		Mentor:            domain.RequestParty{ID: req.MentorID},
	}
	if f, ok := r.s.founders[req.FounderID]; ok {
		v.Founder = f.Party()
	}
	for _, rec := range r.s.mentors {
		if rec.profile.ID == req.MentorID {
			v.Mentor = rec.profile.Party()
			break
		}
	}
	if st, ok := r.s.startups[req.FounderID]; ok {
		st.MentorshipAreas = append([]string(nil), st.MentorshipAreas...)
		v.Startup = &st
	}
	return v
}

type connectionRepo struct {
	s  *Store
	tx bool
}

func (r connectionRepo) Create(_ context.Context, conn *domain.MentorshipConnection) error {
	defer lock(r.s, r.tx)()

	for _, c := range r.s.connections {
		if c.RequestID == conn.RequestID {
			return errDuplicateConnection
		}
	}
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	if conn.Status == "" {
		conn.Status = domain.ConnectionActive
	}
	conn.CreatedAt = r.s.now()

	stored := *conn
	r.s.connections = append(r.s.connections, &stored)
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.s.now()

	stored := *n
	r.s.notifications = append(r.s.notifications, &stored)
	return nil
}
