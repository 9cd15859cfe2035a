package repository

import (
	"context"
	"fmt"

	"chatline/internal/domain/user"
	chat_errors "chatline/pkg/errors"
)

const userColumns = "id, username, password, date_joined"

type PostgresUserRepository struct {
	db PgxPool
}

func NewUserRepository(db PgxPool) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) (user.User, error) {
	query := `
		INSERT INTO users (username, password, date_joined)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query, u.Username, u.Password, u.DateJoined))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, chat_errors.ErrAlreadyExists
		}
		return user.User{}, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

func (r *PostgresUserRepository) FindOne(ctx context.Context, username string) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, chat_errors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("error querying user by username: %w", err)
	}
	return u, nil
}

// FindOneAndUpdate applies patch and returns the row as it is after the update.
func (r *PostgresUserRepository) FindOneAndUpdate(ctx context.Context, username string, patch user.Patch) (user.User, error) {
	query := `
		UPDATE users
		SET password = COALESCE($2, password)
		WHERE username = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query, username, patch.Password))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, chat_errors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("error updating user: %w", err)
	}
	return u, nil
}

// FindOneAndDelete removes the row and returns what was removed.
func (r *PostgresUserRepository) FindOneAndDelete(ctx context.Context, username string) (user.User, error) {
	query := `DELETE FROM users WHERE username = $1 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, chat_errors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("error deleting user: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.DateJoined)
	return u, err
}
