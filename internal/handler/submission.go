package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/middleware"
	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// SubmissionHandler handles talk proposal endpoints
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit handles POST /v1/submissions - file a talk proposal
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SubmitSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), userID, &req)
	if err != nil {
		slog.Error("failed to create submission", "error", err)
		WriteError(w, model.NewInternalError("failed to create submission"))
		return
	}

	WriteData(w, http.StatusCreated, submission, map[string]string{
		"self": "/v1/submissions/" + submission.ID,
		"mine": "/v1/me/submissions",
	})
}

// MySubmissions handles GET /v1/me/submissions - the caller's proposals
func (h *SubmissionHandler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	submissions, err := h.submissionService.ListMine(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		WriteError(w, model.NewInternalError("failed to list submissions"))
		return
	}

	WriteCollection(w, http.StatusOK, submissions, nil, map[string]string{
		"self": "/v1/me/submissions",
	})
}

// GetSubmission handles GET /v1/submissions/{submissionId}
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	submissionID := r.PathValue("submissionId")
	if submissionID == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	submission, err := h.submissionService.Get(r.Context(), submissionID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	WriteData(w, http.StatusOK, submission, map[string]string{
		"self": "/v1/submissions/" + submissionID,
	})
}

// ListSubmissions handles GET /v1/admin/submissions - review queue,
// optionally filtered by ?status=
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	filters := &model.SubmissionFilters{}
	if v := r.URL.Query().Get("status"); v != "" {
		status := model.SubmissionStatus(v)
		if !model.ValidSubmissionStatus(status) {
			WriteError(w, model.NewValidationError([]model.FieldError{
				{Field: "status", Message: "invalid submission status"},
			}))
			return
		}
		filters.Status = &status
	}

	submissions, err := h.submissionService.List(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		WriteError(w, model.NewInternalError("failed to list submissions"))
		return
	}

	WriteCollection(w, http.StatusOK, submissions, nil, map[string]string{
		"self": "/v1/admin/submissions",
	})
}

// Approve handles POST /v1/admin/submissions/{submissionId}/approve -
// accept the proposal and schedule it as a session
func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.GetUserID(r.Context())
	submissionID := r.PathValue("submissionId")
	if submissionID == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	var req model.ApproveSubmissionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	result, err := h.submissionService.Approve(r.Context(), submissionID, reviewerID, &req)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	response := struct {
		Submission *model.SessionSubmission `json:"submission"`
		Session    *model.Session           `json:"session"`
	}{
		Submission: result.Submission,
		Session:    result.Session,
	}

	WriteData(w, http.StatusOK, response, map[string]string{
		"session": "/v1/sessions/" + result.Session.ID,
	})
}

// Reject handles POST /v1/admin/submissions/{submissionId}/reject
func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.submissionService.Reject)
}

// RequestRevision handles POST /v1/admin/submissions/{submissionId}/request-revision
func (h *SubmissionHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.submissionService.RequestRevision)
}

func (h *SubmissionHandler) review(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, submissionID, reviewerID, comments string) (*model.SessionSubmission, error)) {
	reviewerID := middleware.GetUserID(r.Context())
	submissionID := r.PathValue("submissionId")
	if submissionID == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	var req model.ReviewSubmissionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	submission, err := transition(r.Context(), submissionID, reviewerID, req.ReviewComments)
	if err != nil {
		h.handleSubmissionError(w, err)
		return
	}

	WriteData(w, http.StatusOK, submission, map[string]string{
		"self": "/v1/submissions/" + submissionID,
	})
}

func (h *SubmissionHandler) handleSubmissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrSubmissionReviewed),
		errors.Is(err, service.ErrSessionNotFound):
		WriteError(w, MapServiceError(err))
	default:
		slog.Error("unhandled submission error", "error", err)
		WriteError(w, model.NewInternalError("submission operation failed"))
	}
}
