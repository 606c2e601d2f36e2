package service

import (
	"context"
	"errors"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// RegistrationRepository defines the interface for registration storage
type RegistrationRepository interface {
	Register(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error)
	Unregister(ctx context.Context, sessionID, userID string) error
	GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.Registration, error)
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.RegistrationWithUser, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	Count(ctx context.Context) (int, error)
	SetAttendanceConfirmed(ctx context.Context, registrationID string, confirmed bool) (*model.Registration, error)
}

// RegistrationService handles attendee registration for sessions.
//
// Capacity and uniqueness are enforced by the storage layer inside a
// single transaction, so two concurrent registrations for the last spot
// resolve to exactly one success. This service only translates the
// storage errors into domain errors.
type RegistrationService struct {
	registrationRepo RegistrationRepository
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(registrationRepo RegistrationRepository) *RegistrationService {
	return &RegistrationService{registrationRepo: registrationRepo}
}

// Register registers a user for a session. Fails when the session does
// not exist, is at capacity, or the user is already registered.
func (s *RegistrationService) Register(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
	reg, err := s.registrationRepo.Register(ctx, sessionID, userID, specialRequirements)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, database.ErrLimitExceeded):
			return nil, ErrSessionFull
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return reg, nil
}

// Unregister removes a user's registration for a session. The freed spot
// becomes available to others immediately.
func (s *RegistrationService) Unregister(ctx context.Context, sessionID, userID string) error {
	if err := s.registrationRepo.Unregister(ctx, sessionID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotRegistered
		}
		return err
	}
	return nil
}

// ListMine returns the user's registrations with session details,
// most recent first
func (s *RegistrationService) ListMine(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error) {
	return s.registrationRepo.ListByUser(ctx, userID)
}

// ListBySession returns all registrations for a session with attendee
// details. Admin only, enforced by the caller.
func (s *RegistrationService) ListBySession(ctx context.Context, sessionID string) ([]*model.RegistrationWithUser, error) {
	return s.registrationRepo.ListBySession(ctx, sessionID)
}

// ConfirmAttendance marks a registration's attendance as confirmed or
// not. Only the registration's owner may do this.
func (s *RegistrationService) ConfirmAttendance(ctx context.Context, registrationID, userID string, confirmed bool) (*model.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return nil, ErrRegistrationNotFound
	}

	updated, err := s.registrationRepo.SetAttendanceConfirmed(ctx, registrationID, confirmed)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrRegistrationNotFound
	}
	return updated, nil
}
