package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SessionRepository handles session catalogue data access
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			title: $title,
			description: $description,
			speaker_name: $speaker_name,
			speaker_bio: $speaker_bio,
			technology: $technology,
			session_date: <datetime>$session_date,
			duration_minutes: $duration_minutes,
			room: $room,
			max_attendees: $max_attendees,
			level: $level,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":            session.Title,
		"description":      session.Description,
		"speaker_name":     session.SpeakerName,
		"speaker_bio":      session.SpeakerBio,
		"technology":       session.Technology,
		"session_date":     session.SessionDate,
		"duration_minutes": session.DurationMinutes,
		"room":             session.Room,
		"max_attendees":    session.MaxAttendees,
		"level":            session.Level,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	session.ID = created.ID
	session.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseSessionResult(result)
}

// List retrieves sessions matching the given filters, soonest first
func (r *SessionRepository) List(ctx context.Context, filters *model.SessionFilters) ([]*model.Session, error) {
	query := `SELECT * FROM session`
	vars := map[string]interface{}{}
	where := ""

	if filters != nil && filters.Technology != nil {
		where += ` technology = $technology`
		vars["technology"] = *filters.Technology
	}

	if filters != nil && filters.Level != nil {
		if where != "" {
			where += ` AND`
		}
		where += ` level = $level`
		vars["level"] = *filters.Level
	}

	if filters != nil && filters.Search != nil {
		if where != "" {
			where += ` AND`
		}
		where += ` (string::lowercase(title) CONTAINS string::lowercase($search)
			OR string::lowercase(description) CONTAINS string::lowercase($search)
			OR string::lowercase(speaker_name) CONTAINS string::lowercase($search))`
		vars["search"] = *filters.Search
	}

	if where != "" {
		query += ` WHERE` + where
	}
	query += ` ORDER BY session_date ASC`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseSessionsResult(result)
}

// Update applies the non-nil fields of req to a session. Returns nil
// when the session does not exist.
func (r *SessionRepository) Update(ctx context.Context, sessionID string, req *model.UpdateSessionRequest) (*model.Session, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SpeakerName != nil {
		updates["speaker_name"] = *req.SpeakerName
	}
	if req.SpeakerBio != nil {
		updates["speaker_bio"] = *req.SpeakerBio
	}
	if req.Technology != nil {
		updates["technology"] = *req.Technology
	}
	if req.SessionDate != nil {
		updates["session_date"] = req.SessionDate.Format(time.RFC3339)
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Room != nil {
		updates["room"] = *req.Room
	}
	if req.MaxAttendees != nil {
		updates["max_attendees"] = *req.MaxAttendees
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, sessionID)
	}

	query := `UPDATE type::record($session_id) SET`
	vars := map[string]interface{}{"session_id": sessionID}

	first := true
	for key, value := range updates {
		if !first {
			query += ","
		}
		if key == "session_date" {
			query += " session_date = <datetime>$session_date"
		} else {
			query += " " + key + " = $" + key
		}
		vars[key] = value
		first = false
	}

	query += ` RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseSessionResult(result)
}

// Delete removes a session and its registrations as one atomic unit
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE registration WHERE session_id = type::record($session_id)`, map[string]interface{}{"session_id": sessionID})
	batch.Add(`DELETE type::record($session_id)`, map[string]interface{}{"session_id": sessionID})
	return batch.Execute(ctx, r.db)
}

// Count returns the total number of sessions
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT count() as count FROM session GROUP ALL`

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

// RegistrationCounts returns the number of registrations per session,
// keyed by session ID. Computed from the registration relation on read.
func (r *SessionRepository) RegistrationCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT session_id, count() as count FROM registration
		GROUP BY session_id
	`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	if rows, ok := extractQueryResults(result); ok {
		for _, row := range rows {
			if data, ok := row.(map[string]interface{}); ok {
				id := convertSurrealID(data["session_id"])
				if id != "" {
					counts[id] = getInt(data, "count")
				}
			}
		}
	}

	return counts, nil
}

// Helper functions

func parseSessionResult(result interface{}) (*model.Session, error) {
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

	session := &model.Session{
		ID:              convertSurrealID(data["id"]),
		Title:           getString(data, "title"),
		Description:     getString(data, "description"),
		SpeakerName:     getString(data, "speaker_name"),
		SpeakerBio:      getString(data, "speaker_bio"),
		Technology:      getString(data, "technology"),
		DurationMinutes: getInt(data, "duration_minutes"),
		Room:            getString(data, "room"),
		MaxAttendees:    getInt(data, "max_attendees"),
		Level:           model.SessionLevel(getString(data, "level")),
	}

	if t := getTime(data, "session_date"); t != nil {
		session.SessionDate = *t
	}
	if t := getTime(data, "created_on"); t != nil {
		session.CreatedOn = *t
	}

	return session, nil
}

func parseSessionsResult(result []interface{}) ([]*model.Session, error) {
	sessions := make([]*model.Session, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					session, err := parseSessionResult(item)
					if err != nil {
						continue
					}
					sessions = append(sessions, session)
				}
				continue
			}
		}

		session, err := parseSessionResult(res)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
