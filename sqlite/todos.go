package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/user/todoquest-go/todos"
)

const todoColumns = `todo_id, user_id, text, description, priority, completed, reward, created_at`

// TodoRepository implements todos.Repository.
type TodoRepository struct {
	db *sqlx.DB
}

type todoRow struct {
	ID          int64  `db:"todo_id"`
	UserID      int64  `db:"user_id"`
	Text        string `db:"text"`
	Description string `db:"description"`
	Priority    string `db:"priority"`
	Completed   bool   `db:"completed"`
	Reward      int    `db:"reward"`
	CreatedAt   int64  `db:"created_at"`
}

func (r todoRow) toTodo() todos.Todo {
	return todos.Todo{
		ID:          r.ID,
		UserID:      r.UserID,
		Text:        r.Text,
		Description: r.Description,
		Priority:    todos.Priority(r.Priority),
		Completed:   r.Completed,
		Reward:      r.Reward,
		CreatedAt:   fromMillis(r.CreatedAt),
	}
}

func (r *TodoRepository) Create(ctx context.Context, t *todos.Todo) error {
	created := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (user_id, text, description, priority, completed, reward, created_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?)`,
		t.UserID, t.Text, t.Description, string(t.Priority), toMillis(created),
	)
	if err != nil {
		return storageErr("insert todo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("insert todo", err)
	}
	t.ID = id
	t.CreatedAt = fromMillis(toMillis(created))
	return nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]todos.Todo, error) {
	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY todo_id`, userID); err != nil {
		return nil, storageErr("list todos", err)
	}
	out := make([]todos.Todo, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toTodo())
	}
	return out, nil
}

func (r *TodoRepository) Toggle(ctx context.Context, userID, todoID int64) (*todos.Todo, error) {
	var row todoRow
	// The CASE reads the pre-update completed value.
	err := r.db.GetContext(ctx, &row,
		`UPDATE todos
		 SET completed = NOT completed,
		     reward = CASE WHEN completed THEN reward ELSE reward + 1 END
		 WHERE todo_id = ? AND user_id = ?
		 RETURNING `+todoColumns,
		todoID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, todos.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("toggle todo", err)
	}
	t := row.toTodo()
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, todoID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE todo_id = ? AND user_id = ?`, todoID, userID)
	if err != nil {
		return storageErr("delete todo", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete todo", err)
	}
	if n == 0 {
		return todos.ErrNotFound
	}
	return nil
}

var _ todos.Repository = (*TodoRepository)(nil)
