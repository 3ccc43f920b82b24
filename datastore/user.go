package datastore

import (
	"context"
	"strings"
)

// bcryptPrefix is the prefix shared by all bcrypt hash versions ($2a$, $2b$, $2y$).
const bcryptPrefix = "$2"

// User is a dashboard login.
type User struct {
	UserID       int64
	Email        string
	PasswordHash string
}

// HasHashedPassword reports whether the stored password is a bcrypt hash rather than
// a plaintext password inherited from older records.
func (u User) HasHashedPassword() bool {
	return strings.HasPrefix(u.PasswordHash, bcryptPrefix)
}

// UserStore manages dashboard logins.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, email, passwordHash string) (User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	// PlaintextPasswords returns the users whose password is not yet hashed.
	PlaintextPasswords(ctx context.Context) ([]User, error)
}
