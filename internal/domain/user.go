package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role tags an authenticated principal.
type Role string

const (
	RoleVolunteer    Role = "VOLUNTEER"
	RoleOrganization Role = "ORGANIZATION"
	RoleAdmin        Role = "ADMIN"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	switch r {
	case RoleVolunteer, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account with a role and a role-specific profile
// (volunteer or organization).
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

// FullName returns "First Last", or the email when both names are empty.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
