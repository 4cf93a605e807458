package domain

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// StartOfTime is the earliest instant a schedule can describe. Every schedule must
// carry an entry at this instant so that it resolves for any time.
var StartOfTime = time.Unix(0, 0).UTC()

// Transition is a single schedule entry: Value takes effect at At.
type Transition[V any] struct {
	At    time.Time
	Value V
}

// TimedTransitions is an immutable step function from instants to values.
type TimedTransitions[V any] struct {
	entries []Transition[V]
}

// NewTimedTransitions builds a schedule from a map of effective instants to values.
func NewTimedTransitions[V any](values map[time.Time]V) (TimedTransitions[V], error) {
	entries := make([]Transition[V], 0, len(values))
	for at, v := range values {
		entries = append(entries, Transition[V]{At: at.UTC(), Value: v})
	}
	return NewTimedTransitionsFromList(entries)
}

// NewTimedTransitionsFromList builds a schedule from a list of entries in any order.
func NewTimedTransitionsFromList[V any](entries []Transition[V]) (TimedTransitions[V], error) {
	sorted := make([]Transition[V], len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, func(a, b Transition[V]) int {
		return a.At.Compare(b.At)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].At.Equal(sorted[i-1].At) {
			return TimedTransitions[V]{}, fmt.Errorf("%w: duplicate transition at %s",
				ErrInvalidTransitions, sorted[i].At.Format(time.RFC3339))
		}
	}
	if len(sorted) == 0 || !sorted[0].At.Equal(StartOfTime) {
		return TimedTransitions[V]{}, fmt.Errorf("%w: missing entry at start of time", ErrInvalidTransitions)
	}
	return TimedTransitions[V]{entries: sorted}, nil
}

// ConstantTransitions is a schedule holding one value forever.
func ConstantTransitions[V any](value V) TimedTransitions[V] {
	return TimedTransitions[V]{entries: []Transition[V]{{At: StartOfTime, Value: value}}}
}

// ValueAt returns the value of the last entry at or before t.
func (tt TimedTransitions[V]) ValueAt(t time.Time) V {
	// index of first entry strictly after t
	i := sort.Search(len(tt.entries), func(i int) bool {
		return tt.entries[i].At.After(t)
	})
	if i == 0 {
		// t precedes start of time; the first entry still applies
		return tt.entries[0].Value
	}
	return tt.entries[i-1].Value
}

// Len returns the number of entries.
func (tt TimedTransitions[V]) Len() int {
	return len(tt.entries)
}

// IsEmpty is true for the zero value, which has no entries.
func (tt TimedTransitions[V]) IsEmpty() bool {
	return len(tt.entries) == 0
}

// Entries returns a copy of the schedule in ascending order.
func (tt TimedTransitions[V]) Entries() []Transition[V] {
	out := make([]Transition[V], len(tt.entries))
	copy(out, tt.entries)
	return out
}
