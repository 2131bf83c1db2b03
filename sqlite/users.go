package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/user/todoquest-go/auth"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID        int64  `db:"user_id"`
	Name      string `db:"user_name"`
	Pass      string `db:"user_pass"`
	Email     string `db:"user_email"`
	CreatedAt int64  `db:"created_at"`
}

func (r userRow) toUser() *auth.User {
	return &auth.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Pass,
		CreatedAt:    fromMillis(r.CreatedAt),
	}
}

func (r *UserRepository) Insert(ctx context.Context, u *auth.User) error {
	created := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (user_name, user_pass, user_email, created_at) VALUES (?, ?, ?, ?)`,
		u.Name, u.PasswordHash, u.Email, toMillis(created),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicateName
		}
		return storageErr("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("insert user", err)
	}
	u.ID = id
	u.CreatedAt = fromMillis(toMillis(created))
	return nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*auth.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, user_name, user_pass, user_email, created_at FROM users WHERE user_name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find user by name", err)
	}
	return row.toUser(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, user_name, user_pass, user_email, created_at FROM users WHERE user_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("find user by id", err)
	}
	return row.toUser(), nil
}

var _ auth.UserRepository = (*UserRepository)(nil)
