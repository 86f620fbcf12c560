// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// User is the presence record for one live connection: the identity shown
// to other members and the single room the connection currently occupies.
type User struct {
	Username string   `json:"username"`
	Room     RoomName `json:"room"`
}

// ValidateUsername rejects names the protocol cannot carry. Uniqueness is
// the presence directory's job, not the entity's.
func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
