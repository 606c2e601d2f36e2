package handler

import (
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// SuggestHandler handles AI proposal suggestion endpoints
type SuggestHandler struct {
	suggestionService *service.SuggestionService
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(suggestionService *service.SuggestionService) *SuggestHandler {
	return &SuggestHandler{suggestionService: suggestionService}
}

// Suggest handles POST /v1/suggestions - improve a draft title and
// description. Always returns 200; a failed or disabled backend echoes
// the input back with success=false.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	WriteData(w, http.StatusOK, h.suggestionService.Suggest(r.Context(), &req), nil)
}

// Status handles GET /v1/suggestions/status - whether suggestions are
// available
func (h *SuggestHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Enabled bool   `json:"enabled"`
		Message string `json:"message"`
	}{
		Enabled: h.suggestionService.IsEnabled(),
	}
	if status.Enabled {
		status.Message = "AI suggestions are available"
	} else {
		status.Message = "AI suggestions are not configured"
	}

	WriteData(w, http.StatusOK, status, nil)
}
