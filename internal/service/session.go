package service

import (
	"context"
	"errors"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error)
	Update(ctx context.Context, id string, req *model.UpdateSessionRequest) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	RegistrationCounts(ctx context.Context) (map[string]int, error)
}

// SessionService provides the talk catalogue: browsing with filters,
// per-session capacity stats and admin schedule management.
type SessionService struct {
	sessionRepo      SessionRepository
	registrationRepo RegistrationRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo SessionRepository, registrationRepo RegistrationRepository) *SessionService {
	return &SessionService{
		sessionRepo:      sessionRepo,
		registrationRepo: registrationRepo,
	}
}

// List returns sessions matching the filters, each annotated with
// registration stats. When userID is non-empty the caller's own
// registration (if any) is attached so clients can render register or
// unregister actions without extra requests.
func (s *SessionService) List(ctx context.Context, filters *model.SessionFilters, userID string) ([]*model.SessionWithStats, error) {
	sessions, err := s.sessionRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	counts, err := s.sessionRepo.RegistrationCounts(ctx)
	if err != nil {
		return nil, err
	}

	var mine map[string]*model.Registration
	if userID != "" {
		regs, err := s.registrationRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		mine = make(map[string]*model.Registration, len(regs))
		for _, r := range regs {
			reg := r.Registration
			mine[reg.SessionID] = &reg
		}
	}

	result := make([]*model.SessionWithStats, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, buildSessionStats(sess, counts[sess.ID], mine[sess.ID]))
	}
	return result, nil
}

// Get returns a single session with registration stats
func (s *SessionService) Get(ctx context.Context, sessionID, userID string) (*model.SessionWithStats, error) {
	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	count, err := s.registrationRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var reg *model.Registration
	if userID != "" {
		reg, err = s.registrationRepo.GetBySessionAndUser(ctx, sessionID, userID)
		if err != nil {
			return nil, err
		}
	}

	return buildSessionStats(sess, count, reg), nil
}

// Create adds a session to the schedule directly, without going through
// the submission workflow. Admin only, enforced by the caller.
func (s *SessionService) Create(ctx context.Context, req *model.CreateSessionRequest) (*model.Session, error) {
	if req.SessionDate.Before(time.Now()) {
		return nil, ErrSessionInPast
	}

	maxAttendees := req.MaxAttendees
	if maxAttendees == 0 {
		maxAttendees = model.DefaultSessionAttendees
	}

	sess := &model.Session{
		Title:           req.Title,
		Description:     req.Description,
		SpeakerName:     req.SpeakerName,
		SpeakerBio:      req.SpeakerBio,
		Technology:      req.Technology,
		SessionDate:     req.SessionDate,
		DurationMinutes: req.DurationMinutes,
		Room:            req.Room,
		MaxAttendees:    maxAttendees,
		Level:           req.Level,
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Update modifies session fields. Capacity may shrink below the current
// registration count; existing registrations are never evicted.
func (s *SessionService) Update(ctx context.Context, sessionID string, req *model.UpdateSessionRequest) (*model.Session, error) {
	sess, err := s.sessionRepo.Update(ctx, sessionID, req)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session and all of its registrations
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

func buildSessionStats(sess *model.Session, registered int, reg *model.Registration) *model.SessionWithStats {
	available := sess.MaxAttendees - registered
	if available < 0 {
		available = 0
	}
	return &model.SessionWithStats{
		Session:          *sess,
		RegisteredCount:  registered,
		AvailableSpots:   available,
		IsFull:           registered >= sess.MaxAttendees,
		UserRegistration: reg,
	}
}
