package todos

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository())
}

func TestService_CreateAndList(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, CreateTodoRequest{Text: "  buy milk ", Description: "2 litres"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "buy milk", created.Text)
	assert.Equal(t, PriorityMedium, created.Priority)
	assert.False(t, created.Completed)
	assert.Zero(t, created.Reward)

	list, err := s.List(ctx, 1, ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestService_CreateValidation(t *testing.T) {
	s := newTestService()
	for _, req := range []CreateTodoRequest{
		{Text: ""},
		{Text: "   "},
		{Text: strings.Repeat("x", 501)},
		{Text: "ok", Priority: "Urgent"},
		{Text: "ok", Description: strings.Repeat("d", 2001)},
	} {
		_, err := s.Create(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidTodo, "%+v", req)
	}
}

func TestService_ToggleRewardSemantics(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	todo, err := s.Create(ctx, 1, CreateTodoRequest{Text: "run", Priority: "High"})
	require.NoError(t, err)

	steps := []struct {
		completed bool
		reward    int
	}{
		{true, 1},
		{false, 1},
		{true, 2},
	}
	for i, want := range steps {
		got, err := s.Toggle(ctx, 1, todo.ID)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, want.completed, got.Completed, "step %d", i)
		assert.Equal(t, want.reward, got.Reward, "step %d", i)
	}

	st, err := s.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Stars: 2, Level: 1, Completed: 1, Total: 1}, st)
}

func TestService_IsolationBetweenUsers(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	alice, err := s.Create(ctx, 1, CreateTodoRequest{Text: "alice's"})
	require.NoError(t, err)
	_, err = s.Create(ctx, 2, CreateTodoRequest{Text: "bob's"})
	require.NoError(t, err)

	bobList, err := s.List(ctx, 2, ListFilter{})
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, "bob's", bobList[0].Text)

	_, err = s.Toggle(ctx, 2, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 2, alice.ID), ErrNotFound)

	aliceList, err := s.List(ctx, 1, ListFilter{})
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.False(t, aliceList[0].Completed)
}

func TestService_Delete(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	todo, err := s.Create(ctx, 1, CreateTodoRequest{Text: "x"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, 1, todo.ID))
	assert.ErrorIs(t, s.Delete(ctx, 1, todo.ID), ErrNotFound)
}

func TestService_ListFilter(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	for _, in := range []CreateTodoRequest{
		{Text: "Write report", Description: "quarterly"},
		{Text: "Water plants", Description: "balcony"},
		{Text: "Call mom", Description: "weekly"},
	} {
		_, err := s.Create(ctx, 1, in)
		require.NoError(t, err)
	}
	_, err := s.Toggle(ctx, 1, 2)
	require.NoError(t, err)

	texts := func(f ListFilter) []string {
		list, err := s.List(ctx, 1, f)
		require.NoError(t, err)
		var out []string
		for _, t := range list {
			out = append(out, t.Text)
		}
		return out
	}

	assert.Equal(t, []string{"Write report"}, texts(ListFilter{Search: "WR"}))
	assert.Equal(t, []string{"Water plants"}, texts(ListFilter{Search: "balcony"}))
	assert.Equal(t, []string{"Water plants"}, texts(ListFilter{Status: StatusCompleted}))
	assert.Equal(t, []string{"Write report", "Call mom"}, texts(ListFilter{Status: StatusActive}))
	assert.Equal(t, []string{"Call mom"}, texts(ListFilter{Search: "weekly", Status: StatusActive}))
	assert.Len(t, texts(ListFilter{Status: StatusAll}), 3)
	assert.Empty(t, texts(ListFilter{Search: "nothing"}))
}
