// Package handler provides HTTP request handlers for the conference API.
//
// The handler package contains all HTTP endpoint implementations organized by domain.
// Each handler struct encapsulates the dependencies needed to serve requests for a
// specific feature area (authentication, sessions, submissions, admin tooling).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the services it depends on
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: Paginated list of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Most handlers require authentication via JWT tokens. The auth middleware
// extracts the user ID and makes it available via middleware.GetUserID.
// Session browsing endpoints accept anonymous traffic through OptionalAuth
// and enrich responses with per-user registration state when a token is present.
//
// # Example Usage
//
//	handler := NewSessionHandler(sessionService, registrationService)
//	mux.Handle("GET /v1/sessions", optionalAuth(http.HandlerFunc(handler.ListSessions)))
//	mux.Handle("POST /v1/sessions/{sessionId}/registrations", auth(http.HandlerFunc(handler.Register)))
package handler
