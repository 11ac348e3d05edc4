package users

import (
	"fmt"
	"strings"
)

const minPasswordLength = 8

// ValidateEmail performs a basic shape check on an email address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword enforces the minimum password policy for new accounts.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if strings.TrimSpace(password) != password {
		return fmt.Errorf("password must not have leading or trailing whitespace")
	}

	return nil
}

// ValidateRole checks that a role is one the console recognises.
func ValidateRole(role RoleType) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	}
	return fmt.Errorf("unknown role %q", role)
}

// Validate checks the fields an account must have before it is stored.
func (u User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}

	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}

	return ValidateRole(u.Role)
}
