package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleAttendee
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			first_name: $first_name,
			last_name: $last_name,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":      user.Email,
		"hash":       ptrToNone(user.Hash),
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       role,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.CreatedOn
	user.Role = role
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	query := `UPDATE type::record($id) SET role = $role, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"role": role,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes a user together with their registrations and submissions
// as one atomic unit.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE registration WHERE user_id = type::record($user_id)`, map[string]interface{}{"user_id": id})
	batch.Add(`DELETE submission WHERE submitter_id = type::record($user_id)`, map[string]interface{}{"user_id": id})
	batch.Add(`DELETE type::record($user_id)`, map[string]interface{}{"user_id": id})
	return batch.Execute(ctx, r.db)
}

// parseUserResult maps a SurrealDB record to a model.User
func parseUserResult(result interface{}) (*model.User, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Navigate through SurrealDB response structure
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	// Handle array wrapper
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	// The Go client returns IDs as objects, convert to string first
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}

	// Extract hash before JSON marshal/unmarshal (User.Hash has json:"-")
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(jsonBytes, &user); err != nil {
		return nil, err
	}

	user.Hash = hash

	return &user, nil
}
