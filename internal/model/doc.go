// Package model defines domain entities and data structures for the conference API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with authentication credentials and a role
//   - Session: Scheduled conference talk with a room, date and capacity
//   - Registration: An attendee's seat claim on a session
//   - SessionSubmission: A talk proposal moving through the review workflow
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Session struct {
//	    ID    string `json:"id"`
//	    Title string `json:"title"`
//	    Room  string `json:"room"`
//	}
//
// # Validation
//
// Request types carry a Validate method returning per-field errors:
//
//	if errs := req.Validate(); len(errs) > 0 {
//	    // reject with 422 and the field list
//	}
//
// Validation constants (length limits, numeric ranges) are defined next to
// the entity they constrain.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
