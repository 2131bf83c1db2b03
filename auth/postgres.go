package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/todoquest-go/db"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresRepository is the UserRepository backed by the users table.
type PostgresRepository struct {
	q db.Querier
}

// NewPostgresRepository wraps a pgx pool (or anything satisfying db.Querier).
func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

func (r *PostgresRepository) Insert(ctx context.Context, u *User) error {
	const query = `INSERT INTO users (user_name, user_pass, user_email)
	               VALUES ($1, $2, $3)
	               RETURNING user_id, created_at`
	err := r.q.QueryRow(ctx, query, u.Name, u.PasswordHash, u.Email).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateName
		}
		return fmt.Errorf("insert user: %w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*User, error) {
	const query = `SELECT user_id, user_name, user_pass, user_email, created_at
	               FROM users WHERE user_name = $1`
	u, err := r.scanOne(r.q.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by name: %w: %w", ErrStorageUnavailable, err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT user_id, user_name, user_pass, user_email, created_at
	               FROM users WHERE user_id = $1`
	u, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w: %w", ErrStorageUnavailable, err)
	}
	return u, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
