package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	maxEmailLen    = 100
)

// User is the aggregate root for an account. PasswordHash only ever holds a
// bcrypt hash produced by pkg/helpers, never a raw password. A user owns
// zero or more movies; deleting the user cascades to them at the database.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser validates the identity fields; the repository assigns ID and
// timestamps on insert and enforces username/email uniqueness.
func NewUser(username, email, passwordHash string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePasswordHash(passwordHash); err != nil {
		return nil, err
	}
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

// SetPasswordHash replaces the stored hash, e.g. after a password change.
func (u *User) SetPasswordHash(passwordHash string) error {
	if err := validatePasswordHash(passwordHash); err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Message: "cannot be empty"}
	}
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("must be between %d and %d characters", minUsernameLen, maxUsernameLen),
		}
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Message: "cannot be empty"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	if len(email) > maxEmailLen {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("cannot exceed %d characters", maxEmailLen)}
	}
	return nil
}

func validatePasswordHash(passwordHash string) error {
	if strings.TrimSpace(passwordHash) == "" {
		return &ValidationError{Field: "passwordHash", Message: "cannot be empty"}
	}
	return nil
}
