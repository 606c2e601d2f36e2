package model

import "time"

// Registration represents an attendee's claim on one seat of one session.
// The (session, user) pair is unique, enforced by a storage-level index.
type Registration struct {
	ID                  string    `json:"id"`
	SessionID           string    `json:"session_id"`
	UserID              string    `json:"user_id"`
	RegisteredOn        time.Time `json:"registered_on"`
	SpecialRequirements *string   `json:"special_requirements,omitempty"`
	AttendanceConfirmed bool      `json:"attendance_confirmed"`
}

// RegistrationWithSession is a registration joined with its session,
// used for per-user listings.
type RegistrationWithSession struct {
	Registration Registration `json:"registration"`
	Session      Session      `json:"session"`
}

// RegistrationWithUser is a registration joined with attendee details,
// used for admin listings.
type RegistrationWithUser struct {
	Registration Registration `json:"registration"`
	UserEmail    string       `json:"user_email"`
	UserFullName string       `json:"user_full_name"`
}

// Constraints
const (
	MaxRegistrationRequirementsLength = 500
)

// RegisterRequest represents an attendee registering for a session
type RegisterRequest struct {
	SpecialRequirements *string `json:"special_requirements,omitempty"`
}

// Validate validates a RegisterRequest
func (r *RegisterRequest) Validate() []FieldError {
	var errors []FieldError

	if r.SpecialRequirements != nil && len(*r.SpecialRequirements) > MaxRegistrationRequirementsLength {
		errors = append(errors, FieldError{Field: "special_requirements", Message: "special_requirements must be at most 500 characters"})
	}

	return errors
}

// ConfirmAttendanceRequest flips the attendance flag on a registration
type ConfirmAttendanceRequest struct {
	Confirmed bool `json:"confirmed"`
}
