package model

// SuggestionRequest carries a draft title/description for improvement
// by the suggestion collaborator. Purely advisory; nothing is persisted.
type SuggestionRequest struct {
	CurrentTitle       string `json:"current_title"`
	CurrentDescription string `json:"current_description"`
	Technology         string `json:"technology,omitempty"`
	DurationMinutes    int    `json:"duration_minutes,omitempty"`
	Level              string `json:"level,omitempty"`
	Format             string `json:"format,omitempty"`
}

// Validate validates a SuggestionRequest
func (r *SuggestionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.CurrentTitle == "" && r.CurrentDescription == "" {
		errors = append(errors, FieldError{Field: "current_title", Message: "a title or description is required"})
	}
	if len(r.CurrentTitle) > MaxSessionTitleLength {
		errors = append(errors, FieldError{Field: "current_title", Message: "current_title must be at most 200 characters"})
	}
	if len(r.CurrentDescription) > MaxSessionDescriptionLength {
		errors = append(errors, FieldError{Field: "current_description", Message: "current_description must be at most 1000 characters"})
	}

	return errors
}

// SuggestionResponse is the improved copy returned to the drafting UI.
// On failure the submitted text is echoed back unchanged.
type SuggestionResponse struct {
	Success              bool   `json:"success"`
	SuggestedTitle       string `json:"suggested_title"`
	SuggestedDescription string `json:"suggested_description"`
	ErrorMessage         string `json:"error_message,omitempty"`
}
