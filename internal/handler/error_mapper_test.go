package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// ============================================================================
// MapServiceError Tests
// ============================================================================

func TestMapServiceError_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not_admin", service.ErrNotAdmin, http.StatusForbidden},
		{"not_submitter", service.ErrNotSubmitter, http.StatusForbidden},
		{"user_not_found", service.ErrUserNotFound, http.StatusNotFound},
		{"session_not_found", service.ErrSessionNotFound, http.StatusNotFound},
		{"submission_not_found", service.ErrSubmissionNotFound, http.StatusNotFound},
		{"registration_not_found", service.ErrRegistrationNotFound, http.StatusNotFound},
		{"not_registered", service.ErrNotRegistered, http.StatusNotFound},
		{"email_exists", service.ErrEmailAlreadyExists, http.StatusConflict},
		{"already_registered", service.ErrAlreadyRegistered, http.StatusConflict},
		{"session_full", service.ErrSessionFull, http.StatusConflict},
		{"submission_reviewed", service.ErrSubmissionReviewed, http.StatusConflict},
		{"invalid_email", service.ErrInvalidEmail, http.StatusUnprocessableEntity},
		{"password_too_short", service.ErrPasswordTooShort, http.StatusUnprocessableEntity},
		{"session_in_past", service.ErrSessionInPast, http.StatusUnprocessableEntity},
		{"suggestions_disabled", service.ErrSuggestionsDisabled, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pd := MapServiceError(tt.err)
			if pd.Status != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, pd.Status)
			}
		})
	}
}

func TestMapServiceError_WrappedError_StillMatches(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("review submission"), service.ErrSubmissionReviewed)
	pd := MapServiceError(wrapped)

	if pd.Status != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, pd.Status)
	}
	if pd.Title != "Invalid State" {
		t.Errorf("expected title 'Invalid State', got %q", pd.Title)
	}
}

func TestMapServiceError_UnknownError_HidesDetail(t *testing.T) {
	t.Parallel()

	pd := MapServiceError(errors.New("surrealdb: connection reset"))

	if pd.Status != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, pd.Status)
	}
	if pd.Detail == "surrealdb: connection reset" {
		t.Error("internal error detail should not leak to clients")
	}
}
