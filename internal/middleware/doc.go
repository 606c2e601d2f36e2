// Package middleware provides HTTP middleware for the conference API.
//
// The middleware package contains reusable middleware components for
// authentication, authorization, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - OptionalAuth: token extraction for endpoints that also serve anonymous traffic
//   - Admin: role check for admin-only endpoints, chained after Auth
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//   - RateLimit: token bucket rate limiting per user/IP
//   - Idempotency: replay protection for unsafe requests
//
// # Authentication
//
// The auth middleware validates JWT tokens and extracts user information:
//
//	mux.Handle("GET /v1/auth/me", middleware.Auth(authService)(handler))
//
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetClaims(ctx): Returns full token claims
//   - IsAdmin(ctx): Reports whether the caller holds the admin role
package middleware
