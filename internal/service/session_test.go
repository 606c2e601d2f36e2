package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockSessionRepo struct {
	createFunc             func(ctx context.Context, session *model.Session) error
	getByIDFunc            func(ctx context.Context, id string) (*model.Session, error)
	listFunc               func(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error)
	updateFunc             func(ctx context.Context, id string, req *model.UpdateSessionRequest) (*model.Session, error)
	deleteFunc             func(ctx context.Context, id string) error
	countFunc              func(ctx context.Context) (int, error)
	registrationCountsFunc func(ctx context.Context) (map[string]int, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	session.ID = "session:1"
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) List(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filters)
	}
	return nil, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, id string, req *model.UpdateSessionRequest) (*model.Session, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepo) RegistrationCounts(ctx context.Context) (map[string]int, error) {
	if m.registrationCountsFunc != nil {
		return m.registrationCountsFunc(ctx)
	}
	return map[string]int{}, nil
}

// ============================================================================
// List Tests
// ============================================================================

func TestSessionList_AttachesStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sessRepo := &mockSessionRepo{
		listFunc: func(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error) {
			return []*model.Session{
				{ID: "session:1", MaxAttendees: 10},
				{ID: "session:2", MaxAttendees: 2},
			}, nil
		},
		registrationCountsFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"session:1": 3, "session:2": 2}, nil
		},
	}
	svc := NewSessionService(sessRepo, &mockRegistrationRepo{})

	sessions, err := svc.List(ctx, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	if sessions[0].RegisteredCount != 3 || sessions[0].AvailableSpots != 7 || sessions[0].IsFull {
		t.Errorf("unexpected stats for session:1: %+v", sessions[0])
	}
	if !sessions[1].IsFull || sessions[1].AvailableSpots != 0 {
		t.Errorf("expected session:2 full, got %+v", sessions[1])
	}
}

func TestSessionList_AttachesUserRegistration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sessRepo := &mockSessionRepo{
		listFunc: func(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error) {
			return []*model.Session{{ID: "session:1", MaxAttendees: 10}}, nil
		},
	}
	regRepo := &mockRegistrationRepo{
		listByUserFunc: func(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error) {
			return []*model.RegistrationWithSession{
				{Registration: model.Registration{ID: "registration:1", SessionID: "session:1", UserID: userID}},
			}, nil
		},
	}
	svc := NewSessionService(sessRepo, regRepo)

	sessions, err := svc.List(ctx, nil, "user:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessions[0].UserRegistration == nil || sessions[0].UserRegistration.ID != "registration:1" {
		t.Errorf("expected user registration attached, got %+v", sessions[0].UserRegistration)
	}
}

// ============================================================================
// Get Tests
// ============================================================================

func TestSessionGet_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewSessionService(&mockSessionRepo{}, &mockRegistrationRepo{})

	_, err := svc.Get(ctx, "session:missing", "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionGet_OvercapacityClampsAvailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Capacity lowered after registrations were taken.
	sessRepo := &mockSessionRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, MaxAttendees: 5}, nil
		},
	}
	regRepo := &mockRegistrationRepo{
		countBySessionFunc: func(ctx context.Context, sessionID string) (int, error) {
			return 8, nil
		},
	}
	svc := NewSessionService(sessRepo, regRepo)

	sess, err := svc.Get(ctx, "session:1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.AvailableSpots != 0 {
		t.Errorf("expected 0 available spots, got %d", sess.AvailableSpots)
	}
	if !sess.IsFull {
		t.Error("expected session full")
	}
}

// ============================================================================
// Create / Update / Delete Tests
// ============================================================================

func TestSessionCreate_PastDateRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewSessionService(&mockSessionRepo{}, &mockRegistrationRepo{})

	_, err := svc.Create(ctx, &model.CreateSessionRequest{
		Title:           "Old Talk",
		Description:     "A talk in the past.",
		SpeakerName:     "Speaker",
		Technology:      "Go",
		SessionDate:     time.Now().Add(-time.Hour),
		DurationMinutes: 60,
		Room:            "Room A",
		MaxAttendees:    10,
		Level:           model.SessionLevelBeginner,
	})
	if !errors.Is(err, ErrSessionInPast) {
		t.Errorf("expected ErrSessionInPast, got %v", err)
	}
}

func TestSessionCreate_DefaultsCapacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created *model.Session
	svc := NewSessionService(&mockSessionRepo{
		createFunc: func(ctx context.Context, session *model.Session) error {
			created = session
			session.ID = "session:1"
			return nil
		},
	}, &mockRegistrationRepo{})

	_, err := svc.Create(ctx, &model.CreateSessionRequest{
		Title:           "New Talk",
		Description:     "A talk.",
		SpeakerName:     "Speaker",
		Technology:      "Go",
		SessionDate:     time.Now().Add(24 * time.Hour),
		DurationMinutes: 60,
		Room:            "Room A",
		Level:           model.SessionLevelBeginner,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.MaxAttendees != model.DefaultSessionAttendees {
		t.Errorf("expected default capacity %d, got %d", model.DefaultSessionAttendees, created.MaxAttendees)
	}
}

func TestSessionUpdate_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewSessionService(&mockSessionRepo{
		updateFunc: func(ctx context.Context, id string, req *model.UpdateSessionRequest) (*model.Session, error) {
			return nil, fmt.Errorf("%w: no such session", database.ErrNotFound)
		},
	}, &mockRegistrationRepo{})

	_, err := svc.Update(ctx, "session:missing", &model.UpdateSessionRequest{})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionDelete_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewSessionService(&mockSessionRepo{
		deleteFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("%w: no such session", database.ErrNotFound)
		},
	}, &mockRegistrationRepo{})

	err := svc.Delete(ctx, "session:missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
