package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodelep/weathercat/pkg/common"
)

// Repository handles database operations for accounts
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new accounts repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user row
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, salt, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.Salt, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.NewDuplicateError("username %s already exists", user.Username)
		}
		return common.NewStorageError("failed to create user", err)
	}
	return nil
}

// GetUserByUsername fetches a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `
		SELECT id, username, salt, password_hash, created_at, updated_at
		FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Salt, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("user %s not found", username)
		}
		return nil, common.NewStorageError("failed to fetch user", err)
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash for a user
func (r *Repository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE username = $2`
	tag, err := r.db.Exec(ctx, query, hash, username)
	if err != nil {
		return common.NewStorageError("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("user %s not found", username)
	}
	return nil
}
