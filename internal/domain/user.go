package domain

import (
	"strings"
	"time"
)

// Client-facing messages that callers match on exactly.
const (
	MsgUserAlreadyCreated = "User already created"
	MsgUserBlacklisted    = "User Black Listed"
)

// User is the stored identity record.
// User has no json tags; transport layers map it to their own views.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is every attribute of User except the password hash.
type Profile struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail is the single lowercasing rule used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
