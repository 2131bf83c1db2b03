package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/db"
)

const todoColumns = `todo_id, user_id, text, description, priority, completed, reward, created_at`

// PostgresRepository is the Repository backed by the todos table.
type PostgresRepository struct {
	q db.Querier
}

func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, auth.ErrStorageUnavailable, err)
}

func scanTodo(row pgx.Row) (*Todo, error) {
	var t Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Description, &t.Priority, &t.Completed, &t.Reward, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *Todo) error {
	const query = `INSERT INTO todos (user_id, text, description, priority, completed, reward)
	               VALUES ($1, $2, $3, $4, FALSE, 0)
	               RETURNING todo_id, created_at`
	if err := r.q.QueryRow(ctx, query, t.UserID, t.Text, t.Description, string(t.Priority)).Scan(&t.ID, &t.CreatedAt); err != nil {
		return storageErr("insert todo", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Todo, error) {
	rows, err := r.q.Query(ctx, `SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY todo_id`, userID)
	if err != nil {
		return nil, storageErr("list todos", err)
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, storageErr("scan todo", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list todos", err)
	}
	return out, nil
}

func (r *PostgresRepository) Toggle(ctx context.Context, userID, todoID int64) (*Todo, error) {
	// The CASE reads the pre-update completed value.
	const query = `UPDATE todos
	               SET completed = NOT completed,
	                   reward = CASE WHEN completed THEN reward ELSE reward + 1 END
	               WHERE todo_id = $1 AND user_id = $2
	               RETURNING ` + todoColumns
	t, err := scanTodo(r.q.QueryRow(ctx, query, todoID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("toggle todo", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, todoID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM todos WHERE todo_id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return storageErr("delete todo", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
