package model

import "time"

// SubmissionStatus represents where a proposal sits in the review workflow
type SubmissionStatus string

const (
	SubmissionStatusPending       SubmissionStatus = "pending"
	SubmissionStatusApproved      SubmissionStatus = "approved"
	SubmissionStatusRejected      SubmissionStatus = "rejected"
	SubmissionStatusNeedsRevision SubmissionStatus = "needs_revision"
)

// ValidSubmissionStatus reports whether s is a known status
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusNeedsRevision:
		return true
	}
	return false
}

// PresentationFormat represents the proposed delivery format
type PresentationFormat string

const (
	FormatTalk      PresentationFormat = "talk"
	FormatWorkshop  PresentationFormat = "workshop"
	FormatPanel     PresentationFormat = "panel"
	FormatDemo      PresentationFormat = "demo"
	FormatLightning PresentationFormat = "lightning"
)

// ValidPresentationFormat reports whether f is a known format
func ValidPresentationFormat(f PresentationFormat) bool {
	switch f {
	case FormatTalk, FormatWorkshop, FormatPanel, FormatDemo, FormatLightning:
		return true
	}
	return false
}

// SessionSubmission represents a talk proposal awaiting review.
// Reviewer fields are populated if and only if status is not pending.
type SessionSubmission struct {
	ID                  string             `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	SpeakerName         string             `json:"speaker_name"`
	SpeakerEmail        *string            `json:"speaker_email,omitempty"`
	SpeakerBio          string             `json:"speaker_bio,omitempty"`
	Technology          string             `json:"technology"`
	PreferredDuration   int                `json:"preferred_duration_minutes"`
	Level               SessionLevel       `json:"level"`
	Format              PresentationFormat `json:"format"`
	RoomPreference      *string            `json:"room_preference,omitempty"`
	SpecialRequirements *string            `json:"special_requirements,omitempty"`
	AdditionalNotes     *string            `json:"additional_notes,omitempty"`
	SubmitterID         string             `json:"submitter_id"`
	SubmittedOn         time.Time          `json:"submitted_on"`
	Status              SubmissionStatus   `json:"status"`
	ReviewComments      *string            `json:"review_comments,omitempty"`
	ReviewerID          *string            `json:"reviewer_id,omitempty"`
	ReviewedOn          *time.Time         `json:"reviewed_on,omitempty"`
}

// IsPending reports whether the submission is still open for review
func (s *SessionSubmission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}

// SubmissionWithSubmitter joins a submission with its submitter's details,
// used for admin review listings.
type SubmissionWithSubmitter struct {
	Submission        SessionSubmission `json:"submission"`
	SubmitterEmail    string            `json:"submitter_email"`
	SubmitterFullName string            `json:"submitter_full_name"`
}

// Constraints
const (
	MaxSpeakerEmailLength           = 150
	MaxSubmissionRequirementsLength = 300
	MaxAdditionalNotesLength        = 500
	MaxReviewCommentsLength         = 1000
)

// SubmitSessionRequest represents a speaker proposing a talk. Status,
// submitter and submission timestamp are always set server-side.
type SubmitSessionRequest struct {
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	SpeakerName         string             `json:"speaker_name"`
	SpeakerEmail        *string            `json:"speaker_email,omitempty"`
	SpeakerBio          string             `json:"speaker_bio,omitempty"`
	Technology          string             `json:"technology"`
	PreferredDuration   int                `json:"preferred_duration_minutes"`
	Level               SessionLevel       `json:"level,omitempty"`
	Format              PresentationFormat `json:"format,omitempty"`
	RoomPreference      *string            `json:"room_preference,omitempty"`
	SpecialRequirements *string            `json:"special_requirements,omitempty"`
	AdditionalNotes     *string            `json:"additional_notes,omitempty"`
}

// Validate validates a SubmitSessionRequest
func (r *SubmitSessionRequest) Validate() []FieldError {
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

	if r.SpeakerEmail != nil && len(*r.SpeakerEmail) > MaxSpeakerEmailLength {
		errors = append(errors, FieldError{Field: "speaker_email", Message: "speaker_email must be at most 150 characters"})
	}

	if len(r.SpeakerBio) > MaxSpeakerBioLength {
		errors = append(errors, FieldError{Field: "speaker_bio", Message: "speaker_bio must be at most 500 characters"})
	}

	if r.Technology == "" {
		errors = append(errors, FieldError{Field: "technology", Message: "technology is required"})
	} else if len(r.Technology) > MaxTechnologyLength {
		errors = append(errors, FieldError{Field: "technology", Message: "technology must be at most 50 characters"})
	}

	if r.PreferredDuration < MinDurationMinutes || r.PreferredDuration > MaxDurationMinutes {
		errors = append(errors, FieldError{Field: "preferred_duration_minutes", Message: "duration must be between 15 and 480 minutes"})
	}

	if r.Level != "" && !ValidSessionLevel(r.Level) {
		errors = append(errors, FieldError{Field: "level", Message: "level must be beginner, intermediate, advanced, or expert"})
	}

	if r.Format != "" && !ValidPresentationFormat(r.Format) {
		errors = append(errors, FieldError{Field: "format", Message: "format must be talk, workshop, panel, demo, or lightning"})
	}

	if r.RoomPreference != nil && len(*r.RoomPreference) > MaxRoomLength {
		errors = append(errors, FieldError{Field: "room_preference", Message: "room_preference must be at most 50 characters"})
	}

	if r.SpecialRequirements != nil && len(*r.SpecialRequirements) > MaxSubmissionRequirementsLength {
		errors = append(errors, FieldError{Field: "special_requirements", Message: "special_requirements must be at most 300 characters"})
	}

	if r.AdditionalNotes != nil && len(*r.AdditionalNotes) > MaxAdditionalNotesLength {
		errors = append(errors, FieldError{Field: "additional_notes", Message: "additional_notes must be at most 500 characters"})
	}

	return errors
}

// ApproveSubmissionRequest carries the scheduling decision an admin makes
// when approving a proposal. Date, room and capacity come from the
// reviewer; everything else is copied from the submission.
type ApproveSubmissionRequest struct {
	ReviewComments *string   `json:"review_comments,omitempty"`
	SessionDate    time.Time `json:"session_date"`
	Room           string    `json:"room"`
	MaxAttendees   int       `json:"max_attendees,omitempty"`
}

// Validate validates an ApproveSubmissionRequest
func (r *ApproveSubmissionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.ReviewComments != nil && len(*r.ReviewComments) > MaxReviewCommentsLength {
		errors = append(errors, FieldError{Field: "review_comments", Message: "review_comments must be at most 1000 characters"})
	}

	if r.SessionDate.IsZero() {
		errors = append(errors, FieldError{Field: "session_date", Message: "session_date is required"})
	}

	if r.Room == "" {
		errors = append(errors, FieldError{Field: "room", Message: "room is required"})
	} else if len(r.Room) > MaxRoomLength {
		errors = append(errors, FieldError{Field: "room", Message: "room must be at most 50 characters"})
	}

	if r.MaxAttendees != 0 && (r.MaxAttendees < MinSessionAttendees || r.MaxAttendees > MaxSessionAttendees) {
		errors = append(errors, FieldError{Field: "max_attendees", Message: "max_attendees must be between 1 and 1000"})
	}

	return errors
}

// ReviewSubmissionRequest carries the comments for a reject or
// request-revision decision. Comments are required for both.
type ReviewSubmissionRequest struct {
	ReviewComments string `json:"review_comments"`
}

// Validate validates a ReviewSubmissionRequest
func (r *ReviewSubmissionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.ReviewComments == "" {
		errors = append(errors, FieldError{Field: "review_comments", Message: "review_comments is required"})
	} else if len(r.ReviewComments) > MaxReviewCommentsLength {
		errors = append(errors, FieldError{Field: "review_comments", Message: "review_comments must be at most 1000 characters"})
	}

	return errors
}

// SubmissionFilters narrows admin submission listings
type SubmissionFilters struct {
	Status *SubmissionStatus `json:"status,omitempty"`
}
