package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedTransitions_ValueAt(t *testing.T) {
	change := time.Date(2023, time.May, 13, 0, 0, 0, 0, time.UTC)
	tt, err := NewTimedTransitions(map[time.Time]string{
		StartOfTime: "before",
		change:      "after",
	})
	require.NoError(t, err)

	assert.Equal(t, "before", tt.ValueAt(change.Add(-time.Nanosecond)))
	assert.Equal(t, "after", tt.ValueAt(change))
	assert.Equal(t, "after", tt.ValueAt(change.AddDate(10, 0, 0)))
	assert.Equal(t, "before", tt.ValueAt(StartOfTime.Add(-time.Hour)))
	assert.Equal(t, 2, tt.Len())
}

func TestTimedTransitions_Validation(t *testing.T) {
	t.Run("requires start of time", func(t *testing.T) {
		_, err := NewTimedTransitions(map[time.Time]int{time.Now(): 1})
		assert.ErrorIs(t, err, ErrInvalidTransitions)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewTimedTransitionsFromList[int](nil)
		assert.ErrorIs(t, err, ErrInvalidTransitions)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		at := StartOfTime.Add(time.Hour)
		_, err := NewTimedTransitionsFromList([]Transition[int]{
			{At: StartOfTime, Value: 0},
			{At: at, Value: 1},
			{At: at, Value: 2},
		})
		assert.ErrorIs(t, err, ErrInvalidTransitions)
	})

	t.Run("sorts entries", func(t *testing.T) {
		later := StartOfTime.Add(time.Hour)
		tt, err := NewTimedTransitionsFromList([]Transition[int]{
			{At: later, Value: 1},
			{At: StartOfTime, Value: 0},
		})
		require.NoError(t, err)
		entries := tt.Entries()
		assert.Equal(t, StartOfTime, entries[0].At)
		assert.Equal(t, later, entries[1].At)
	})
}

func TestConstantTransitions(t *testing.T) {
	tt := ConstantTransitions(TokenStatusValid)
	assert.Equal(t, TokenStatusValid, tt.ValueAt(time.Now()))
	assert.Equal(t, 1, tt.Len())
	assert.False(t, tt.IsEmpty())
	assert.True(t, TimedTransitions[int]{}.IsEmpty())
}
