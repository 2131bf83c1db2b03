package todos

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Repository stores todos. Every method is scoped by the owner's user id; a todo
// that exists under another owner is reported as ErrNotFound. Storage failures wrap
// auth.ErrStorageUnavailable.
type Repository interface {
	// Create stores t (t.UserID must be set) and fills in its ID and CreatedAt.
	Create(ctx context.Context, t *Todo) error
	// ListByUser returns the owner's todos ordered by id.
	ListByUser(ctx context.Context, userID int64) ([]Todo, error)
	// Toggle flips completion in one atomic step, adding 1 to the reward when the todo
	// becomes completed, and returns the updated todo.
	Toggle(ctx context.Context, userID, todoID int64) (*Todo, error)
	Delete(ctx context.Context, userID, todoID int64) error
}

// MemoryRepository is an in-process Repository for tests and STORAGE_DRIVER=memory.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{todos: make(map[int64]Todo)}
}

func (m *MemoryRepository) Create(_ context.Context, t *Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now().UTC()
	m.todos[t.ID] = *t
	return nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Todo, 0)
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b Todo) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *MemoryRepository) Toggle(_ context.Context, userID, todoID int64) (*Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	if !t.Completed {
		t.Reward++
	}
	t.Completed = !t.Completed
	m.todos[todoID] = t
	return &t, nil
}

func (m *MemoryRepository) Delete(_ context.Context, userID, todoID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[todoID]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(m.todos, todoID)
	return nil
}
