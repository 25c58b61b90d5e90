// Package user contains the user domain model of the Query Hub forum.
// It owns the role enum and its capability checks; no external dependencies.
package user

import (
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
)

// Role defines the closed set of user roles. Role-gated operations check
// capabilities through the methods below rather than comparing raw strings.
type Role string

const (
	// RoleStudent is the default role for registered users.
	RoleStudent Role = "student"
	// RoleMentor marks experienced contributors; cosmetically highlighted
	// and ranked on a separate leaderboard, no extra privileges.
	RoleMentor Role = "mentor"
	// RoleAdmin may delete any content, delete users, and manage reports.
	RoleAdmin Role = "admin"
)

// IsValid checks that the role is one of the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string { return string(r) }

// CanModerate returns true if the role may delete content it does not own
// and manage the report log.
func (r Role) CanModerate() bool { return r == RoleAdmin }

// OnLeaderboard returns true if the role participates in a leaderboard tab.
// Admins are ranked nowhere.
func (r Role) OnLeaderboard() bool { return r == RoleStudent || r == RoleMentor }

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("user", "ParseRole", shared.ErrValidation, "unknown role: "+s)
	}
	return r, nil
}

// User is a registered member of the forum.
//
// Points is a running reputation counter adjusted by scored events (answering,
// receiving votes). It is never recomputed from history and may go negative.
type User struct {
	// ID is the unique, immutable identifier.
	ID int64 `json:"id"`

	// Username is the display name; editable via profile updates.
	Username string `json:"username"`

	// Email is the login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Credential verification belongs to the identity collaborator.
	PasswordHash string `json:"password"`

	// Role is the user's role in the community.
	Role Role `json:"role"`

	// Points is the current reputation total. Unbounded in both directions.
	Points int `json:"points"`

	// Bio is a short free-form self description.
	Bio string `json:"bio"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is the denormalized author identity captured on content at
// creation time. It is a copy, deliberately not kept in sync with later
// profile edits.
type Snapshot struct {
	Username string
	Role     Role
}

// Snapshot captures the user's current identity for denormalization.
func (u *User) Snapshot() Snapshot {
	return Snapshot{Username: u.Username, Role: u.Role}
}

// Validate checks entity invariants.
func (u *User) Validate() error {
	if u.ID == 0 {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "email is required")
	}
	if !u.Role.IsValid() {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "invalid role")
	}
	return nil
}
