package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is the internal account record. PasswordHash is only populated on the
// login lookup path and must never cross the service boundary.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Team         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the public projection of a User exposed to API callers.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team"`
	Role  string `json:"role"`
}

// View strips the credential fields from a User.
func (u *User) View() *UserView {
	return &UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Team:  u.Team,
		Role:  u.Role,
	}
}

// NormalizeEmail is the canonical form behind the uniqueness invariant:
// one account per trimmed, lowercased address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
