package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/middleware"
	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// SessionHandler handles session catalogue and registration endpoints
type SessionHandler struct {
	sessionService      *service.SessionService
	registrationService *service.RegistrationService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, registrationService *service.RegistrationService) *SessionHandler {
	return &SessionHandler{
		sessionService:      sessionService,
		registrationService: registrationService,
	}
}

// ListSessions handles GET /v1/sessions - browse the catalogue
// Supports ?technology=, ?search= and ?level= filters.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	filters := &model.SessionFilters{}
	q := r.URL.Query()
	if v := q.Get("technology"); v != "" {
		filters.Technology = &v
	}
	if v := q.Get("search"); v != "" {
		filters.Search = &v
	}
	if v := q.Get("level"); v != "" {
		level := model.SessionLevel(v)
		if !model.ValidSessionLevel(level) {
			WriteError(w, model.NewValidationError([]model.FieldError{
				{Field: "level", Message: "invalid session level"},
			}))
			return
		}
		filters.Level = &level
	}

	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessionService.List(r.Context(), filters, userID)
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		WriteError(w, model.NewInternalError("failed to list sessions"))
		return
	}

	WriteCollection(w, http.StatusOK, sessions, nil, map[string]string{
		"self": "/v1/sessions",
	})
}

// GetSession handles GET /v1/sessions/{sessionId} - session details with stats
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	userID := middleware.GetUserID(r.Context())

	session, err := h.sessionService.Get(r.Context(), sessionID, userID)
	if err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteData(w, http.StatusOK, session, map[string]string{
		"self": "/v1/sessions/" + sessionID,
	})
}

// CreateSession handles POST /v1/sessions - add a session directly (admin)
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	session, err := h.sessionService.Create(r.Context(), &req)
	if err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, session, map[string]string{
		"self": "/v1/sessions/" + session.ID,
	})
}

// UpdateSession handles PATCH /v1/sessions/{sessionId} - modify a session (admin)
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.UpdateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	session, err := h.sessionService.Update(r.Context(), sessionID, &req)
	if err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteData(w, http.StatusOK, session, map[string]string{
		"self": "/v1/sessions/" + sessionID,
	})
}

// DeleteSession handles DELETE /v1/sessions/{sessionId} - remove a session
// and its registrations (admin)
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	if err := h.sessionService.Delete(r.Context(), sessionID); err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteNoContent(w)
}

// Register handles POST /v1/sessions/{sessionId}/register - claim a spot
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.RegisterRequest
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, model.NewBadRequestError("invalid request body"))
			return
		}
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	registration, err := h.registrationService.Register(r.Context(), sessionID, userID, req.SpecialRequirements)
	if err != nil {
		if errors.Is(err, service.ErrSessionFull) {
			h.writeSessionFull(w, r, sessionID)
			return
		}
		h.handleSessionError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, registration, map[string]string{
		"session": "/v1/sessions/" + sessionID,
		"mine":    "/v1/me/registrations",
	})
}

// Unregister handles DELETE /v1/sessions/{sessionId}/register - free the spot
func (h *SessionHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	if err := h.registrationService.Unregister(r.Context(), sessionID, userID); err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteNoContent(w)
}

// ListSessionRegistrations handles GET /v1/sessions/{sessionId}/registrations -
// attendee roster for a session (admin)
func (h *SessionHandler) ListSessionRegistrations(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	// Confirm the session exists so a bad ID is a 404, not an empty list.
	if _, err := h.sessionService.Get(r.Context(), sessionID, ""); err != nil {
		h.handleSessionError(w, err)
		return
	}

	registrations, err := h.registrationService.ListBySession(r.Context(), sessionID)
	if err != nil {
		h.handleSessionError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, registrations, nil, map[string]string{
		"session": "/v1/sessions/" + sessionID,
	})
}

// writeSessionFull answers a capacity rejection with the counts clients
// need to render the state.
func (h *SessionHandler) writeSessionFull(w http.ResponseWriter, r *http.Request, sessionID string) {
	limit, current := 0, 0
	if session, err := h.sessionService.Get(r.Context(), sessionID, ""); err == nil {
		limit = session.Session.MaxAttendees
		current = session.RegisteredCount
	}
	WriteError(w, model.NewSessionFullError(limit, current))
}

func (h *SessionHandler) handleSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNotRegistered),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrSessionInPast),
		errors.Is(err, service.ErrSessionFull):
		WriteError(w, MapServiceError(err))
	default:
		slog.Error("unhandled session error", "error", err)
		WriteError(w, model.NewInternalError("session operation failed"))
	}
}
