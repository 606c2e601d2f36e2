package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SubmissionRepository handles talk proposal data access.
//
// Review transitions re-check the pending status inside a single database
// transaction, so two concurrent reviewers can never both move the same
// submission out of pending. Approve additionally creates the session in
// the same transaction: both writes commit or neither does.
type SubmissionRepository struct {
	db database.Database
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db database.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create persists a new proposal. Status, submission timestamp and
// submitter are always set here, never taken from client input.
func (r *SubmissionRepository) Create(ctx context.Context, sub *model.SessionSubmission) error {
	query := `
		CREATE submission CONTENT {
			title: $title,
			description: $description,
			speaker_name: $speaker_name,
			speaker_email: IF $speaker_email IS NOT NULL THEN $speaker_email ELSE NONE END,
			speaker_bio: $speaker_bio,
			technology: $technology,
			preferred_duration_minutes: $preferred_duration_minutes,
			level: $level,
			format: $format,
			room_preference: IF $room_preference IS NOT NULL THEN $room_preference ELSE NONE END,
			special_requirements: IF $special_requirements IS NOT NULL THEN $special_requirements ELSE NONE END,
			additional_notes: IF $additional_notes IS NOT NULL THEN $additional_notes ELSE NONE END,
			submitter_id: type::record($submitter_id),
			submitted_on: time::now(),
			status: $status
		}
	`

	vars := map[string]interface{}{
		"title":                      sub.Title,
		"description":                sub.Description,
		"speaker_name":               sub.SpeakerName,
		"speaker_email":              ptrToNone(sub.SpeakerEmail),
		"speaker_bio":                sub.SpeakerBio,
		"technology":                 sub.Technology,
		"preferred_duration_minutes": sub.PreferredDuration,
		"level":                      sub.Level,
		"format":                     sub.Format,
		"room_preference":            ptrToNone(sub.RoomPreference),
		"special_requirements":       ptrToNone(sub.SpecialRequirements),
		"additional_notes":           ptrToNone(sub.AdditionalNotes),
		"submitter_id":               sub.SubmitterID,
		"status":                     model.SubmissionStatusPending,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	sub.ID = created.ID
	sub.Status = model.SubmissionStatusPending
	return nil
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.SessionSubmission, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseSubmissionResult(result)
}

// reviewGuard asserts the submission exists and is still pending.
// Shared prefix of every review transition transaction.
const reviewGuard = `
	LET $sub = (SELECT * FROM ONLY type::record($submission_id));
	IF $sub IS NONE THEN THROW "submission_missing" END;
	IF $sub.status != "pending" THEN THROW "submission_reviewed" END;
`

// Review moves a pending submission to a terminal status without creating
// a session (reject / needs-revision). Returns database.ErrNotFound when
// the submission does not exist and database.ErrPrecondition when it has
// already been reviewed.
func (r *SubmissionRepository) Review(ctx context.Context, submissionID, reviewerID string, status model.SubmissionStatus, comments *string) (*model.SessionSubmission, error) {
	query := `BEGIN TRANSACTION;` + reviewGuard + `
		UPDATE type::record($submission_id) SET
			status = $status,
			review_comments = IF $comments IS NOT NULL THEN $comments ELSE NONE END,
			reviewer_id = type::record($reviewer_id),
			reviewed_on = time::now();
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"submission_id": submissionID,
		"reviewer_id":   reviewerID,
		"status":        status,
		"comments":      ptrToNone(comments),
	}

	if _, err := r.db.Query(ctx, query, vars); err != nil {
		return nil, mapReviewGuardError(err)
	}

	return r.GetByID(ctx, submissionID)
}

// Approve moves a pending submission to approved and creates the session
// in the same transaction. Session fields come from the submission except
// for the speaker name, which is the submitter's account name, and the
// date, room and capacity, which are the reviewer's scheduling decision.
// Returns the ID of the created session.
func (r *SubmissionRepository) Approve(ctx context.Context, submissionID, reviewerID string, comments *string, sessionDate time.Time, room string, maxAttendees int) (string, error) {
	sessionID := "session:" + strings.ReplaceAll(uuid.NewString(), "-", "")

	query := `BEGIN TRANSACTION;` + reviewGuard + `
		UPDATE type::record($submission_id) SET
			status = "approved",
			review_comments = IF $comments IS NOT NULL THEN $comments ELSE NONE END,
			reviewer_id = type::record($reviewer_id),
			reviewed_on = time::now();
		CREATE type::record($new_session_id) CONTENT {
			title: $sub.title,
			description: $sub.description,
			speaker_name: string::concat($sub.submitter_id.first_name, " ", $sub.submitter_id.last_name),
			speaker_bio: $sub.speaker_bio,
			technology: $sub.technology,
			session_date: <datetime>$session_date,
			duration_minutes: $sub.preferred_duration_minutes,
			room: $room,
			max_attendees: $max_attendees,
			level: $sub.level,
			created_on: time::now()
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"submission_id":  submissionID,
		"reviewer_id":    reviewerID,
		"comments":       ptrToNone(comments),
		"new_session_id": sessionID,
		"session_date":   sessionDate,
		"room":           room,
		"max_attendees":  maxAttendees,
	}

	if _, err := r.db.Query(ctx, query, vars); err != nil {
		return "", mapReviewGuardError(err)
	}

	return sessionID, nil
}

func mapReviewGuardError(err error) error {
	switch {
	case isThrownGuard(err, guardSubmissionMissing):
		return fmt.Errorf("%w: submission does not exist", database.ErrNotFound)
	case isThrownGuard(err, guardSubmissionReviewed):
		return fmt.Errorf("%w: submission already reviewed", database.ErrPrecondition)
	}
	return err
}

// List retrieves submissions joined with submitter details for admin
// review, newest first
func (r *SubmissionRepository) List(ctx context.Context, filters *model.SubmissionFilters) ([]*model.SubmissionWithSubmitter, error) {
	query := `
		SELECT *,
			submitter_id.email AS submitter_email,
			submitter_id.first_name AS submitter_first_name,
			submitter_id.last_name AS submitter_last_name
		FROM submission
	`
	vars := map[string]interface{}{}

	if filters != nil && filters.Status != nil {
		query += ` WHERE status = $status`
		vars["status"] = *filters.Status
	}
	query += ` ORDER BY submitted_on DESC`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items := make([]*model.SubmissionWithSubmitter, 0)
	rows, _ := extractQueryResults(result)
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}

		sub, err := parseSubmissionResult(data)
		if err != nil {
			continue
		}

		fullName := getString(data, "submitter_first_name")
		if last := getString(data, "submitter_last_name"); last != "" {
			if fullName != "" {
				fullName += " "
			}
			fullName += last
		}

		items = append(items, &model.SubmissionWithSubmitter{
			Submission:        *sub,
			SubmitterEmail:    getString(data, "submitter_email"),
			SubmitterFullName: fullName,
		})
	}

	return items, nil
}

// ListBySubmitter retrieves a user's own submissions, newest first
func (r *SubmissionRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]*model.SessionSubmission, error) {
	query := `
		SELECT * FROM submission
		WHERE submitter_id = type::record($submitter_id)
		ORDER BY submitted_on DESC
	`
	vars := map[string]interface{}{"submitter_id": submitterID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	subs := make([]*model.SessionSubmission, 0)
	rows, _ := extractQueryResults(result)
	for _, row := range rows {
		sub, err := parseSubmissionResult(row)
		if err != nil {
			continue
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// CountByStatus returns the number of submissions with the given status
func (r *SubmissionRepository) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error) {
	query := `
		SELECT count() as count FROM submission
		WHERE status = $status
		GROUP ALL
	`
	vars := map[string]interface{}{"status": status}

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

// Count returns the total number of submissions
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT count() as count FROM submission GROUP ALL`

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

// parseSubmissionResult maps a SurrealDB record to a model.SessionSubmission
func parseSubmissionResult(result interface{}) (*model.SessionSubmission, error) {
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

	sub := &model.SessionSubmission{
		ID:                  convertSurrealID(data["id"]),
		Title:               getString(data, "title"),
		Description:         getString(data, "description"),
		SpeakerName:         getString(data, "speaker_name"),
		SpeakerEmail:        getStringPtr(data, "speaker_email"),
		SpeakerBio:          getString(data, "speaker_bio"),
		Technology:          getString(data, "technology"),
		PreferredDuration:   getInt(data, "preferred_duration_minutes"),
		Level:               model.SessionLevel(getString(data, "level")),
		Format:              model.PresentationFormat(getString(data, "format")),
		RoomPreference:      getStringPtr(data, "room_preference"),
		SpecialRequirements: getStringPtr(data, "special_requirements"),
		AdditionalNotes:     getStringPtr(data, "additional_notes"),
		SubmitterID:         convertSurrealID(data["submitter_id"]),
		Status:              model.SubmissionStatus(getString(data, "status")),
		ReviewComments:      getStringPtr(data, "review_comments"),
	}

	if rid, ok := data["reviewer_id"]; ok && rid != nil {
		id := convertSurrealID(rid)
		if id != "" && id != "<nil>" {
			sub.ReviewerID = &id
		}
	}

	if t := getTime(data, "submitted_on"); t != nil {
		sub.SubmittedOn = *t
	}
	sub.ReviewedOn = getTime(data, "reviewed_on")

	return sub, nil
}
