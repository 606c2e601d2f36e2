// Package repository implements the data access layer for the conference API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles CRUD operations for a specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Database Connection
//
// Repositories accept a database.Database interface, allowing:
//
//   - Connection pooling and management at a higher level
//   - Transaction support when needed
//   - Easy testing with mock implementations
//
// # Atomic Guards
//
// Registration capacity checks and submission review transitions run as
// multi-statement transactions with THROW statements guarding the write.
// The thrown marker strings are mapped back to database sentinel errors
// (ErrNotFound, ErrLimitExceeded, ErrPrecondition) so callers never need
// to parse SurrealDB error text themselves.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - Record link projections (session_id.* AS session) for joins
//
// # Example Usage
//
//	repo := NewSessionRepository(db)
//	session, err := repo.GetByID(ctx, "session:abc123")
//	if err != nil {
//	    if errors.Is(err, database.ErrNotFound) {
//	        // Handle not found
//	    }
//	    return err
//	}
package repository
