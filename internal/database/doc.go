// Package database provides database connectivity for the conference API.
//
// The database package abstracts SurrealDB operations and provides
// a consistent interface for data access across the application.
//
// # Database Interface
//
// The Database interface defines core operations:
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Connection Management
//
// Connect to SurrealDB:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    User:      "root",
//	    Password:  "secret",
//	    Namespace: "conference",
//	    Database:  "main",
//	})
//	if err := db.Connect(ctx); err != nil {
//	    // handle connection failure
//	}
//
// # Transactions
//
// Transactions are batch-based: statements accumulate and run together
// wrapped in BEGIN TRANSACTION / COMMIT TRANSACTION. Any check that must
// see current persisted state (seat capacity, pending review status)
// belongs inside the transaction text via LET / IF / THROW, never as a
// read in Go followed by a separate write. See transaction.go.
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrLimitExceeded: A capacity guard inside a transaction rejected the write
//   - ErrPrecondition: A state guard inside a transaction rejected the write
//
// # Query Helpers
//
// Helper functions for common query patterns:
//
//   - Query: Execute query returning multiple results
//   - QueryOne: Execute query expecting single result
//   - Execute: Execute query with no return value
package database
