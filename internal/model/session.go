package model

import "time"

// SessionLevel represents the intended audience experience level
type SessionLevel string

const (
	SessionLevelBeginner     SessionLevel = "beginner"
	SessionLevelIntermediate SessionLevel = "intermediate"
	SessionLevelAdvanced     SessionLevel = "advanced"
	SessionLevelExpert       SessionLevel = "expert"
)

// ValidSessionLevel reports whether l is a known level
func ValidSessionLevel(l SessionLevel) bool {
	switch l {
	case SessionLevelBeginner, SessionLevelIntermediate, SessionLevelAdvanced, SessionLevelExpert:
		return true
	}
	return false
}

// Session represents a scheduled conference talk
type Session struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	SpeakerName     string       `json:"speaker_name"`
	SpeakerBio      string       `json:"speaker_bio,omitempty"`
	Technology      string       `json:"technology"`
	SessionDate     time.Time    `json:"session_date"`
	DurationMinutes int          `json:"duration_minutes"`
	Room            string       `json:"room"`
	MaxAttendees    int          `json:"max_attendees"`
	Level           SessionLevel `json:"level"`
	CreatedOn       time.Time    `json:"created_on"`
}

// SessionWithStats pairs a session with counts derived from the
// registration relation. Counts are computed on read, never stored
// on the session row.
type SessionWithStats struct {
	Session         Session `json:"session"`
	RegisteredCount int     `json:"registered_count"`
	AvailableSpots  int     `json:"available_spots"`
	IsFull          bool    `json:"is_full"`
	// Caller's own registration, when authenticated
	UserRegistration *Registration `json:"user_registration,omitempty"`
}

// Constraints
const (
	MaxSessionTitleLength       = 200
	MaxSessionDescriptionLength = 1000
	MaxSpeakerNameLength        = 100
	MaxSpeakerBioLength         = 500
	MaxTechnologyLength         = 50
	MaxRoomLength               = 50

	MinDurationMinutes = 15
	MaxDurationMinutes = 480

	MinSessionAttendees     = 1
	MaxSessionAttendees     = 1000
	DefaultSessionAttendees = 50
)

// SessionFilters narrows catalogue listings
type SessionFilters struct {
	Technology *string       `json:"technology,omitempty"`
	Search     *string       `json:"search,omitempty"` // matches title, description, speaker name
	Level      *SessionLevel `json:"level,omitempty"`
}

// CreateSessionRequest represents an admin creating a session directly
type CreateSessionRequest struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	SpeakerName     string       `json:"speaker_name"`
	SpeakerBio      string       `json:"speaker_bio,omitempty"`
	Technology      string       `json:"technology"`
	SessionDate     time.Time    `json:"session_date"`
	DurationMinutes int          `json:"duration_minutes"`
	Room            string       `json:"room"`
	MaxAttendees    int          `json:"max_attendees,omitempty"`
	Level           SessionLevel `json:"level,omitempty"`
}

// Validate validates a CreateSessionRequest
func (r *CreateSessionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxSessionTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be at most 200 characters"})
	}

	if r.Description == "" {
		errors = append(errors, FieldError{Field: "description", Message: "description is required"})
	} else if len(r.Description) > MaxSessionDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	if r.SpeakerName == "" {
		errors = append(errors, FieldError{Field: "speaker_name", Message: "speaker_name is required"})
	} else if len(r.SpeakerName) > MaxSpeakerNameLength {
		errors = append(errors, FieldError{Field: "speaker_name", Message: "speaker_name must be at most 100 characters"})
	}

	if len(r.SpeakerBio) > MaxSpeakerBioLength {
		errors = append(errors, FieldError{Field: "speaker_bio", Message: "speaker_bio must be at most 500 characters"})
	}

	if r.Technology == "" {
		errors = append(errors, FieldError{Field: "technology", Message: "technology is required"})
	} else if len(r.Technology) > MaxTechnologyLength {
		errors = append(errors, FieldError{Field: "technology", Message: "technology must be at most 50 characters"})
	}

	if r.SessionDate.IsZero() {
		errors = append(errors, FieldError{Field: "session_date", Message: "session_date is required"})
	}

	if r.DurationMinutes < MinDurationMinutes || r.DurationMinutes > MaxDurationMinutes {
		errors = append(errors, FieldError{Field: "duration_minutes", Message: "duration must be between 15 and 480 minutes"})
	}

	if r.Room == "" {
		errors = append(errors, FieldError{Field: "room", Message: "room is required"})
	} else if len(r.Room) > MaxRoomLength {
		errors = append(errors, FieldError{Field: "room", Message: "room must be at most 50 characters"})
	}

	if r.MaxAttendees != 0 && (r.MaxAttendees < MinSessionAttendees || r.MaxAttendees > MaxSessionAttendees) {
		errors = append(errors, FieldError{Field: "max_attendees", Message: "max_attendees must be between 1 and 1000"})
	}

	if r.Level != "" && !ValidSessionLevel(r.Level) {
		errors = append(errors, FieldError{Field: "level", Message: "level must be beginner, intermediate, advanced, or expert"})
	}

	return errors
}

// UpdateSessionRequest represents an admin editing a session
type UpdateSessionRequest struct {
	Title           *string       `json:"title,omitempty"`
	Description     *string       `json:"description,omitempty"`
	SpeakerName     *string       `json:"speaker_name,omitempty"`
	SpeakerBio      *string       `json:"speaker_bio,omitempty"`
	Technology      *string       `json:"technology,omitempty"`
	SessionDate     *time.Time    `json:"session_date,omitempty"`
	DurationMinutes *int          `json:"duration_minutes,omitempty"`
	Room            *string       `json:"room,omitempty"`
	MaxAttendees    *int          `json:"max_attendees,omitempty"`
	Level           *SessionLevel `json:"level,omitempty"`
}

// Validate validates an UpdateSessionRequest
func (r *UpdateSessionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil && (*r.Title == "" || len(*r.Title) > MaxSessionTitleLength) {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 1 to 200 characters"})
	}
	if r.Description != nil && (*r.Description == "" || len(*r.Description) > MaxSessionDescriptionLength) {
		errors = append(errors, FieldError{Field: "description", Message: "description must be 1 to 1000 characters"})
	}
	if r.SpeakerName != nil && (*r.SpeakerName == "" || len(*r.SpeakerName) > MaxSpeakerNameLength) {
		errors = append(errors, FieldError{Field: "speaker_name", Message: "speaker_name must be 1 to 100 characters"})
	}
	if r.SpeakerBio != nil && len(*r.SpeakerBio) > MaxSpeakerBioLength {
		errors = append(errors, FieldError{Field: "speaker_bio", Message: "speaker_bio must be at most 500 characters"})
	}
	if r.Technology != nil && (*r.Technology == "" || len(*r.Technology) > MaxTechnologyLength) {
		errors = append(errors, FieldError{Field: "technology", Message: "technology must be 1 to 50 characters"})
	}
	if r.DurationMinutes != nil && (*r.DurationMinutes < MinDurationMinutes || *r.DurationMinutes > MaxDurationMinutes) {
		errors = append(errors, FieldError{Field: "duration_minutes", Message: "duration must be between 15 and 480 minutes"})
	}
	if r.Room != nil && (*r.Room == "" || len(*r.Room) > MaxRoomLength) {
		errors = append(errors, FieldError{Field: "room", Message: "room must be 1 to 50 characters"})
	}
	if r.MaxAttendees != nil && (*r.MaxAttendees < MinSessionAttendees || *r.MaxAttendees > MaxSessionAttendees) {
		errors = append(errors, FieldError{Field: "max_attendees", Message: "max_attendees must be between 1 and 1000"})
	}
	if r.Level != nil && !ValidSessionLevel(*r.Level) {
		errors = append(errors, FieldError{Field: "level", Message: "level must be beginner, intermediate, advanced, or expert"})
	}

	return errors
}
