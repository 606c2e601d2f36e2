package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNotAdmin           = errors.New("admin privileges required")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInPast   = errors.New("session date must be in the future")
)

// ===== Registration Errors =====
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrSessionFull          = errors.New("session is full")
	ErrAlreadyRegistered    = errors.New("already registered for this session")
	ErrNotRegistered        = errors.New("not registered for this session")
)

// ===== Submission Errors =====
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionReviewed = errors.New("submission has already been reviewed")
	ErrNotSubmitter       = errors.New("not the submitter of this proposal")
)

// ===== Suggestion Errors =====
var (
	ErrSuggestionsDisabled = errors.New("AI suggestions are not configured")
)
