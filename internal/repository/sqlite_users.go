package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"photoshare/internal/models"
)

// SQLiteStore implements UserRepo and ImageRepo on database/sql.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Ensure implementation of both repo interfaces at compile time.
var (
	_ UserRepo  = (*SQLiteStore)(nil)
	_ ImageRepo = (*SQLiteStore)(nil)
)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO NOTHING`
	selectUserByUsernameSQL = `SELECT username, email, password_hash, created_at FROM users WHERE username = ?`
)

// CreateUser inserts a user. A taken username yields ErrDuplicateUser.
func (r *SQLiteStore) CreateUser(ctx context.Context, u models.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Email, u.PasswordHash, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %q: %w", u.Username, err)
	}
	if n == 0 {
		return fmt.Errorf("create user %q: %w", u.Username, ErrDuplicateUser)
	}
	return nil
}

// GetUser fetches a user by username.
func (r *SQLiteStore) GetUser(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, notFoundUser(username)
		}
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
