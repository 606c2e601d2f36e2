package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/middleware"
	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// RegistrationHandler handles the attendee's own registration endpoints
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// MyRegistrations handles GET /v1/me/registrations - the caller's
// registrations with session details
func (h *RegistrationHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	registrations, err := h.registrationService.ListMine(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list registrations", "error", err)
		WriteError(w, model.NewInternalError("failed to list registrations"))
		return
	}

	WriteCollection(w, http.StatusOK, registrations, nil, map[string]string{
		"self": "/v1/me/registrations",
	})
}

// ConfirmAttendance handles POST /v1/registrations/{registrationId}/attendance
func (h *RegistrationHandler) ConfirmAttendance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	registrationID := r.PathValue("registrationId")
	if registrationID == "" {
		WriteError(w, model.NewBadRequestError("registration ID required"))
		return
	}

	var req model.ConfirmAttendanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	registration, err := h.registrationService.ConfirmAttendance(r.Context(), registrationID, userID, req.Confirmed)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			WriteError(w, model.NewNotFoundError("registration"))
			return
		}
		slog.Error("failed to confirm attendance", "error", err)
		WriteError(w, model.NewInternalError("failed to confirm attendance"))
		return
	}

	WriteData(w, http.StatusOK, registration, map[string]string{
		"mine": "/v1/me/registrations",
	})
}
