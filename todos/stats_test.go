package todos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name string
		list []Todo
		want Stats
	}{
		{"empty", nil, Stats{Level: 1}},
		{"nothing completed", []Todo{{Priority: PriorityHigh}, {Priority: PriorityLow}}, Stats{Level: 1, Total: 2}},
		{
			"reward wins over weight",
			[]Todo{{Completed: true, Reward: 4, Priority: PriorityLow}},
			Stats{Stars: 4, Level: 1, Completed: 1, Total: 1},
		},
		{
			"weight when reward is zero",
			[]Todo{
				{Completed: true, Priority: PriorityLow},
				{Completed: true, Priority: PriorityMedium},
				{Completed: true, Priority: PriorityHigh},
			},
			Stats{Stars: 6, Level: 1, Completed: 3, Total: 3},
		},
		{"unknown priority counts one", []Todo{{Completed: true, Priority: "Urgent"}}, Stats{Stars: 1, Level: 1, Completed: 1, Total: 1}},
		{
			"level boundary",
			[]Todo{{Completed: true, Reward: 9}, {Completed: true, Reward: 1}, {Reward: 50}},
			Stats{Stars: 10, Level: 2, Completed: 2, Total: 3},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStats(tc.list))
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = ParsePriority("High")
	assert.NoError(t, err)
	assert.Equal(t, 3, p.Weight())

	_, err = ParsePriority("high")
	assert.ErrorIs(t, err, ErrInvalidTodo)
}
