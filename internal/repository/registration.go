package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// RegistrationRepository handles registration data access.
//
// The capacity and uniqueness checks for Register run inside a single
// database transaction so they are always evaluated against current
// persisted state. A stale "not full" read in Go can never slip past the
// guard: the seat count is re-read inside the transaction and the unique
// index on (session_id, user_id) catches duplicate races.
type RegistrationRepository struct {
	db database.Database
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db database.Database) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// registerQuery re-checks session existence and capacity against persisted
// state, then inserts. THROW aborts the whole transaction.
const registerQuery = `
	BEGIN TRANSACTION;
	LET $sess = (SELECT * FROM ONLY type::record($session_id));
	IF $sess IS NONE THEN THROW "session_missing" END;
	LET $cnt = (SELECT count() AS count FROM registration WHERE session_id = type::record($session_id) GROUP ALL)[0].count OR 0;
	IF $cnt >= $sess.max_attendees THEN THROW "session_full" END;
	CREATE registration CONTENT {
		session_id: type::record($session_id),
		user_id: type::record($user_id),
		special_requirements: IF $special_requirements IS NOT NULL THEN $special_requirements ELSE NONE END,
		attendance_confirmed: false,
		registered_on: time::now()
	};
	COMMIT TRANSACTION;
`

// Register atomically claims a seat on a session for a user.
// Returns database.ErrNotFound when the session does not exist,
// database.ErrLimitExceeded when the session is at capacity, and
// database.ErrDuplicate when the user already holds a registration.
func (r *RegistrationRepository) Register(ctx context.Context, sessionID, userID string, specialRequirements *string) (*model.Registration, error) {
	vars := map[string]interface{}{
		"session_id":           sessionID,
		"user_id":              userID,
		"special_requirements": ptrToNone(specialRequirements),
	}

	_, err := r.db.Query(ctx, registerQuery, vars)
	if err != nil {
		switch {
		case isThrownGuard(err, guardSessionMissing):
			return nil, fmt.Errorf("%w: session does not exist", database.ErrNotFound)
		case isThrownGuard(err, guardSessionFull):
			return nil, fmt.Errorf("%w: session at capacity", database.ErrLimitExceeded)
		case isUniqueConstraintError(err):
			return nil, fmt.Errorf("%w: already registered for session", database.ErrDuplicate)
		}
		return nil, err
	}

	reg, err := r.GetBySessionAndUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, errors.New("registration committed but could not be read back")
	}
	return reg, nil
}

// Unregister atomically removes a user's registration, freeing one seat.
// Returns database.ErrNotFound when no registration exists for the pair.
func (r *RegistrationRepository) Unregister(ctx context.Context, sessionID, userID string) error {
	query := `
		DELETE registration
		WHERE session_id = type::record($session_id)
		AND user_id = type::record($user_id)
		RETURN BEFORE
	`
	vars := map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	deleted, ok := extractQueryResults(result)
	if !ok || len(deleted) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// GetBySessionAndUser retrieves a registration by its (session, user) pair
func (r *RegistrationRepository) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.Registration, error) {
	query := `
		SELECT * FROM registration
		WHERE session_id = type::record($session_id)
		AND user_id = type::record($user_id)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseRegistrationResult(result)
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseRegistrationResult(result)
}

// ListByUser retrieves a user's registrations joined with their sessions,
// most recent registration first
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithSession, error) {
	query := `
		SELECT *, session_id.* AS session FROM registration
		WHERE user_id = type::record($user_id)
		ORDER BY registered_on DESC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items := make([]*model.RegistrationWithSession, 0)
	rows, _ := extractQueryResults(result)
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}

		reg, err := parseRegistrationResult(data)
		if err != nil {
			continue
		}

		item := &model.RegistrationWithSession{Registration: *reg}
		if sessData, ok := data["session"].(map[string]interface{}); ok {
			if session, err := parseSessionResult(sessData); err == nil {
				item.Session = *session
			}
		}
		items = append(items, item)
	}

	return items, nil
}

// ListBySession retrieves registrations joined with attendee details for
// admin listings. Pass an empty sessionID to list across all sessions.
func (r *RegistrationRepository) ListBySession(ctx context.Context, sessionID string) ([]*model.RegistrationWithUser, error) {
	query := `
		SELECT *,
			user_id.email AS user_email,
			user_id.first_name AS user_first_name,
			user_id.last_name AS user_last_name
		FROM registration
	`
	vars := map[string]interface{}{}

	if sessionID != "" {
		query += ` WHERE session_id = type::record($session_id)`
		vars["session_id"] = sessionID
	}
	query += ` ORDER BY registered_on ASC`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items := make([]*model.RegistrationWithUser, 0)
	rows, _ := extractQueryResults(result)
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}

		reg, err := parseRegistrationResult(data)
		if err != nil {
			continue
		}

		fullName := getString(data, "user_first_name")
		if last := getString(data, "user_last_name"); last != "" {
			if fullName != "" {
				fullName += " "
			}
			fullName += last
		}

		items = append(items, &model.RegistrationWithUser{
			Registration: *reg,
			UserEmail:    getString(data, "user_email"),
			UserFullName: fullName,
		})
	}

	return items, nil
}

// CountBySession returns the number of registrations held against a session
func (r *RegistrationRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	query := `
		SELECT count() as count FROM registration
		WHERE session_id = type::record($session_id)
		GROUP ALL
	`
	vars := map[string]interface{}{"session_id": sessionID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return getInt(data, "count"), nil
	}
	return 0, nil
}

// Count returns the total number of registrations
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT count() as count FROM registration GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return getInt(data, "count"), nil
	}
	return 0, nil
}

// SetAttendanceConfirmed flips the attendance flag on a registration
func (r *RegistrationRepository) SetAttendanceConfirmed(ctx context.Context, registrationID string, confirmed bool) (*model.Registration, error) {
	query := `
		UPDATE type::record($registration_id)
		SET attendance_confirmed = $confirmed
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"registration_id": registrationID,
		"confirmed":       confirmed,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseRegistrationResult(result)
}

// parseRegistrationResult maps a SurrealDB record to a model.Registration
func parseRegistrationResult(result interface{}) (*model.Registration, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	reg := &model.Registration{
		ID:                  convertSurrealID(data["id"]),
		SessionID:           convertSurrealID(data["session_id"]),
		UserID:              convertSurrealID(data["user_id"]),
		SpecialRequirements: getStringPtr(data, "special_requirements"),
		AttendanceConfirmed: getBool(data, "attendance_confirmed"),
	}

	if t := getTime(data, "registered_on"); t != nil {
		reg.RegisteredOn = *t
	}

	return reg, nil
}
