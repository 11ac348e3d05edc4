package users

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user's platform role.
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// User is the profile shape the backend returns from login and from the
// /users/ resource. The console persists it as a serialized snapshot rather
// than re-fetching it on every page load.
type User struct {
	ID       string   `json:"id,omitempty"`
	Email    string   `json:"email,omitempty"`
	Username string   `json:"username,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Role     RoleType `json:"role,omitempty"`
	Active   bool     `json:"is_active,omitempty"`

	// PasswordHash is only populated server-side; it never crosses the wire.
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
