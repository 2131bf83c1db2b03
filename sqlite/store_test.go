package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/todos"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func addUser(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	u := &auth.User{Name: name, PasswordHash: "$2a$04$placeholder"}
	require.NoError(t, s.Users().Insert(context.Background(), u))
	return u.ID
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpen_FileIsReusable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todoquest.db")

	s, err := Open(path)
	require.NoError(t, err)
	id := addUser(t, s, "alice")
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	u, err := s.Users().FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
}

func TestUserRepository(t *testing.T) {
	s := openTestStore(t)
	repo := s.Users()
	ctx := context.Background()

	u := &auth.User{Name: "alice", PasswordHash: "hash", Email: "a@example.com"}
	require.NoError(t, repo.Insert(ctx, u))
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.FindByName(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)

	missing, err := repo.FindByName(ctx, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	err = repo.Insert(ctx, &auth.User{Name: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, auth.ErrDuplicateName)

	got, err = repo.FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestUserRepository_ConcurrentDuplicateRegistration(t *testing.T) {
	s := openTestStore(t)
	store := auth.NewCredentialStore(s.Users(), auth.NewHasher(bcrypt.MinCost))

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateUser(context.Background(), "dup", "pw", "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, auth.ErrDuplicateName):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestTodoRepository_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.Todos()
	ctx := context.Background()
	alice := addUser(t, s, "alice")

	todo := &todos.Todo{UserID: alice, Text: "write tests", Description: "sqlite", Priority: todos.PriorityHigh}
	require.NoError(t, repo.Create(ctx, todo))
	assert.Positive(t, todo.ID)

	list, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *todo, list[0])
	assert.False(t, list[0].Completed)

	toggled, err := repo.Toggle(ctx, alice, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 1, toggled.Reward)

	toggled, err = repo.Toggle(ctx, alice, todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Equal(t, 1, toggled.Reward)

	toggled, err = repo.Toggle(ctx, alice, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 2, toggled.Reward)

	require.NoError(t, repo.Delete(ctx, alice, todo.ID))
	assert.ErrorIs(t, repo.Delete(ctx, alice, todo.ID), todos.ErrNotFound)

	list, err = repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTodoRepository_Isolation(t *testing.T) {
	s := openTestStore(t)
	repo := s.Todos()
	ctx := context.Background()
	alice := addUser(t, s, "alice")
	bob := addUser(t, s, "bob")

	secret := &todos.Todo{UserID: alice, Text: "alice only", Priority: todos.PriorityLow}
	require.NoError(t, repo.Create(ctx, secret))

	list, err := repo.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Toggle(ctx, bob, secret.ID)
	assert.ErrorIs(t, err, todos.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bob, secret.ID), todos.ErrNotFound)

	list, err = repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Completed)
}

func TestTodoRepository_UnknownOwnerRejected(t *testing.T) {
	s := openTestStore(t)
	err := s.Todos().Create(context.Background(), &todos.Todo{UserID: 404, Text: "orphan", Priority: todos.PriorityMedium})
	assert.ErrorIs(t, err, auth.ErrStorageUnavailable)
}

func TestStore_ClosedDatabaseIsStorageUnavailable(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Users().FindByName(context.Background(), "alice")
	assert.ErrorIs(t, err, auth.ErrStorageUnavailable)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.user_name (2067)")))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
}
