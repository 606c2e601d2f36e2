package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAttendee UserRole = "attendee" // Default role
	UserRoleAdmin    UserRole = "admin"    // Can review submissions and manage the catalogue
)

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      UserRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
