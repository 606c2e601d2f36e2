package handler

import (
	"errors"

	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrNotSubmitter):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrSessionNotFound):
		return model.NewNotFoundError("session")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return model.NewNotFoundError("submission")
	case errors.Is(err, service.ErrRegistrationNotFound),
		errors.Is(err, service.ErrNotRegistered):
		return model.NewNotFoundError("registration")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyRegistered):
		return model.NewConflictError(err.Error())
	case errors.Is(err, service.ErrSubmissionReviewed):
		return model.NewInvalidStateError(err.Error())
	// Registration handlers report capacity with counts; this is the
	// fallback for paths without them.
	case errors.Is(err, service.ErrSessionFull):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrSessionInPast):
		return model.NewValidationError([]model.FieldError{{Field: "session_date", Message: err.Error()}})

	// ===== Service Unavailable → 503 =====
	case errors.Is(err, service.ErrSuggestionsDisabled):
		return model.NewServiceUnavailableError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
