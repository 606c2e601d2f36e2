package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/middleware"
	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignupRequest represents the signup endpoint request body
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents a token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role"`
	CreatedOn string `json:"created_on"`
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	response := struct {
		User  UserResponse  `json:"user"`
		Token TokenResponse `json:"token"`
	}{
		User:  toUserResponse(result.User),
		Token: toTokenResponse(result),
	}

	WriteData(w, http.StatusCreated, response, map[string]string{
		"self": "/v1/auth/me",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	response := struct {
		User  UserResponse  `json:"user"`
		Token TokenResponse `json:"token"`
	}{
		User:  toUserResponse(result.User),
		Token: toTokenResponse(result),
	}

	WriteData(w, http.StatusOK, response, map[string]string{
		"self": "/v1/auth/me",
	})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, model.NewNotFoundError("user"))
			return
		}
		WriteError(w, model.NewInternalError("failed to get user"))
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), map[string]string{
		"self": "/v1/auth/me",
	})
}

func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, model.NewUnauthorizedError("invalid email or password"))
	case errors.Is(err, service.ErrEmailAlreadyExists):
		WriteError(w, model.NewConflictError("email already registered"))
	case errors.Is(err, service.ErrUserNotFound):
		WriteError(w, model.NewNotFoundError("user"))
	case errors.Is(err, service.ErrPasswordRequired):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "password", Message: "password is required"},
		}))
	case errors.Is(err, service.ErrPasswordTooShort):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "password", Message: "password must be at least 8 characters"},
		}))
	case errors.Is(err, service.ErrPasswordTooLong):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "password", Message: "password must be at most 128 characters"},
		}))
	case errors.Is(err, service.ErrInvalidEmail):
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "email", Message: "invalid email format"},
		}))
	default:
		slog.Error("unhandled auth error", "error", err)
		WriteError(w, model.NewInternalError("authentication error"))
	}
}

// Helper functions

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Role:      string(user.Role),
		CreatedOn: user.CreatedOn.Format("2006-01-02T15:04:05Z"),
	}
}

func toTokenResponse(result *service.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
	}
}
