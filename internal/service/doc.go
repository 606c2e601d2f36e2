// Package service implements the business logic layer for the conference API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Concurrency
//
// Registration capacity and submission review transitions are enforced
// atomically by the storage layer, not by read-then-write logic here.
// Services translate the resulting storage errors (ErrLimitExceeded,
// ErrDuplicate, ErrPrecondition) into domain errors.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrSessionNotFound = errors.New("session not found")
//	    ErrSessionFull     = errors.New("session is full")
//	)
//
// # Example Usage
//
//	service := NewRegistrationService(registrationRepository)
//	reg, err := service.Register(ctx, sessionID, userID, nil)
//	if errors.Is(err, service.ErrSessionFull) {
//	    // surface 409 to the client
//	}
package service
