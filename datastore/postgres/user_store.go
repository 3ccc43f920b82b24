package postgres

import (
	"context"
	"fmt"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_USER_BY_EMAIL = `
		SELECT user_id, email, password_hash FROM users
		WHERE email = $1`
	query_INSERT_USER = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, email, password_hash`
	query_UPDATE_PASSWORD_HASH = `
		UPDATE users SET password_hash = $2
		WHERE user_id = $1`
	query_PLAINTEXT_PASSWORDS = `
		SELECT user_id, email, password_hash FROM users
		WHERE password_hash NOT LIKE '$2%'
		ORDER BY user_id`
)

var _ datastore.UserStore = &userStore{}

type userStore struct {
	db *dbController
}

func scanUser(row rowScanner) (datastore.User, error) {
	var u datastore.User
	err := row.Scan(&u.UserID, &u.Email, &u.PasswordHash)

	return u, err
}

func (s *userStore) ByEmail(ctx context.Context, email string) (datastore.User, error) {
	return queryOne(ctx, s.db, datastore.ErrUserNotFound, scanUser, query_USER_BY_EMAIL, email)
}

func (s *userStore) Create(ctx context.Context, email, passwordHash string) (datastore.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, query_INSERT_USER, email, passwordHash))
	if err != nil {
		return datastore.User{}, translateError("failed to insert user", err)
	}

	return u, nil
}

func (s *userStore) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	return execOne(ctx, s.db, datastore.ErrUserNotFound, query_UPDATE_PASSWORD_HASH, userID, passwordHash)
}

func (s *userStore) PlaintextPasswords(ctx context.Context) ([]datastore.User, error) {
	users, err := queryAll(ctx, s.db, scanUser, query_PLAINTEXT_PASSWORDS)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
