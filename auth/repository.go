package auth

import (
	"context"
	"sync"
	"time"
)

// UserRepository persists user records for the Credential Store.
//
// Implementations must:
//   - return ErrDuplicateName from Insert when the name is taken, never overwrite;
//   - return (nil, nil) from FindByName when no user has that name;
//   - return ErrUserNotFound from FindByID when the id is unknown;
//   - wrap every other failure with ErrStorageUnavailable.
type UserRepository interface {
	// Insert stores u and fills in its ID and CreatedAt.
	Insert(ctx context.Context, u *User) error
	FindByName(ctx context.Context, name string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}

// MemoryRepository is an in-process UserRepository for tests and STORAGE_DRIVER=memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]User
	byName map[string]int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[int64]User),
		byName: make(map[string]int64),
		now:    time.Now,
	}
}

func (m *MemoryRepository) Insert(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byName[u.Name]; taken {
		return ErrDuplicateName
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = m.now().UTC()
	m.byID[u.ID] = *u
	m.byName[u.Name] = u.ID
	return nil
}

func (m *MemoryRepository) FindByName(_ context.Context, name string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]
	if !ok {
		return nil, nil
	}
	u := m.byID[id]
	return &u, nil
}

func (m *MemoryRepository) FindByID(_ context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
