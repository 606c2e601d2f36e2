package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockRegistrationRepo struct {
	registerFunc               func(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error)
	unregisterFunc             func(ctx context.Context, sessionID, userID string) error
	getBySessionAndUserFunc    func(ctx context.Context, sessionID, userID string) (*model.Registration, error)
	getByIDFunc                func(ctx context.Context, id string) (*model.Registration, error)
	listByUserFunc             func(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error)
	listBySessionFunc          func(ctx context.Context, sessionID string) ([]*model.RegistrationWithUser, error)
	countBySessionFunc         func(ctx context.Context, sessionID string) (int, error)
	countFunc                  func(ctx context.Context) (int, error)
	setAttendanceConfirmedFunc func(ctx context.Context, registrationID string, confirmed bool) (*model.Registration, error)
}

func (m *mockRegistrationRepo) Register(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, sessionID, userID, specialRequirements)
	}
	return &model.Registration{ID: "registration:1", SessionID: sessionID, UserID: userID}, nil
}

func (m *mockRegistrationRepo) Unregister(ctx context.Context, sessionID, userID string) error {
	if m.unregisterFunc != nil {
		return m.unregisterFunc(ctx, sessionID, userID)
	}
	return nil
}

func (m *mockRegistrationRepo) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.Registration, error) {
	if m.getBySessionAndUserFunc != nil {
		return m.getBySessionAndUserFunc(ctx, sessionID, userID)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.RegistrationWithUser, error) {
	if m.listBySessionFunc != nil {
		return m.listBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	if m.countBySessionFunc != nil {
		return m.countBySessionFunc(ctx, sessionID)
	}
	return 0, nil
}

func (m *mockRegistrationRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockRegistrationRepo) SetAttendanceConfirmed(ctx context.Context, registrationID string, confirmed bool) (*model.Registration, error) {
	if m.setAttendanceConfirmedFunc != nil {
		return m.setAttendanceConfirmedFunc(ctx, registrationID, confirmed)
	}
	return nil, nil
}

// capacityRepo simulates the storage layer's atomic capacity and
// uniqueness enforcement for concurrency tests.
type capacityRepo struct {
	mockRegistrationRepo

	mu       sync.Mutex
	capacity int
	regs     map[string]string // "session/user" -> registration ID
	nextID   int
}

func newCapacityRepo(capacity int) *capacityRepo {
	return &capacityRepo{capacity: capacity, regs: make(map[string]string)}
}

func (r *capacityRepo) Register(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionID + "/" + userID
	if _, ok := r.regs[key]; ok {
		return nil, database.ErrDuplicate
	}
	if len(r.regs) >= r.capacity {
		return nil, database.ErrLimitExceeded
	}

	r.nextID++
	id := fmt.Sprintf("registration:%d", r.nextID)
	r.regs[key] = id
	return &model.Registration{ID: id, SessionID: sessionID, UserID: userID}, nil
}

func (r *capacityRepo) Unregister(ctx context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionID + "/" + userID
	if _, ok := r.regs[key]; !ok {
		return database.ErrNotFound
	}
	delete(r.regs, key)
	return nil
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{})

	reg, err := svc.Register(ctx, "session:1", "user:1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.SessionID != "session:1" || reg.UserID != "user:1" {
		t.Errorf("unexpected registration: %+v", reg)
	}
}

func TestRegister_SessionNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		registerFunc: func(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
			return nil, fmt.Errorf("%w: session does not exist", database.ErrNotFound)
		},
	})

	_, err := svc.Register(ctx, "session:missing", "user:1", nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegister_SessionFull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		registerFunc: func(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
			return nil, fmt.Errorf("%w: session at capacity", database.ErrLimitExceeded)
		},
	})

	_, err := svc.Register(ctx, "session:1", "user:1", nil)
	if !errors.Is(err, ErrSessionFull) {
		t.Errorf("expected ErrSessionFull, got %v", err)
	}
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		registerFunc: func(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
			return nil, fmt.Errorf("%w: duplicate registration", database.ErrDuplicate)
		},
	})

	_, err := svc.Register(ctx, "session:1", "user:1", nil)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegister_LastSpot_OnlyOneWinner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newCapacityRepo(1)
	svc := NewRegistrationService(repo)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Register(ctx, "session:1", fmt.Sprintf("user:%d", i), nil)
		}(i)
	}
	wg.Wait()

	var wins, fulls int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSessionFull):
			fulls++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("expected exactly 1 successful registration, got %d", wins)
	}
	if fulls != attempts-1 {
		t.Errorf("expected %d full rejections, got %d", attempts-1, fulls)
	}
}

func TestRegister_AfterUnregister_SpotReusable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newCapacityRepo(1)
	svc := NewRegistrationService(repo)

	if _, err := svc.Register(ctx, "session:1", "user:1", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "session:1", "user:2", nil); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
	if err := svc.Unregister(ctx, "session:1", "user:1"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if _, err := svc.Register(ctx, "session:1", "user:2", nil); err != nil {
		t.Errorf("register after freed spot: %v", err)
	}
}

// ============================================================================
// Unregister Tests
// ============================================================================

func TestUnregister_NotRegistered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		unregisterFunc: func(ctx context.Context, sessionID, userID string) error {
			return fmt.Errorf("%w: no registration", database.ErrNotFound)
		},
	})

	err := svc.Unregister(ctx, "session:1", "user:1")
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestUnregister_Idempotent_SecondCallFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newCapacityRepo(5)
	svc := NewRegistrationService(repo)

	if _, err := svc.Register(ctx, "session:1", "user:1", nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Unregister(ctx, "session:1", "user:1"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if err := svc.Unregister(ctx, "session:1", "user:1"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered on second unregister, got %v", err)
	}
}

// ============================================================================
// ConfirmAttendance Tests
// ============================================================================

func TestConfirmAttendance_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Registration, error) {
			return &model.Registration{ID: id, SessionID: "session:1", UserID: "user:1"}, nil
		},
		setAttendanceConfirmedFunc: func(ctx context.Context, registrationID string, confirmed bool) (*model.Registration, error) {
			return &model.Registration{ID: registrationID, AttendanceConfirmed: confirmed}, nil
		},
	})

	reg, err := svc.ConfirmAttendance(ctx, "registration:1", "user:1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reg.AttendanceConfirmed {
		t.Error("expected attendance confirmed")
	}
}

func TestConfirmAttendance_NotOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Registration, error) {
			return &model.Registration{ID: id, SessionID: "session:1", UserID: "user:1"}, nil
		},
	})

	_, err := svc.ConfirmAttendance(ctx, "registration:1", "user:2", true)
	if !errors.Is(err, ErrRegistrationNotFound) {
		t.Errorf("expected ErrRegistrationNotFound for non-owner, got %v", err)
	}
}

func TestConfirmAttendance_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewRegistrationService(&mockRegistrationRepo{})

	_, err := svc.ConfirmAttendance(ctx, "registration:missing", "user:1", true)
	if !errors.Is(err, ErrRegistrationNotFound) {
		t.Errorf("expected ErrRegistrationNotFound, got %v", err)
	}
}
