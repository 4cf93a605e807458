package list_events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
)

// recordingReadModel captures the request it was called with.
type recordingReadModel struct {
	got *list_events.Request
}

func (r *recordingReadModel) ListEvents(_ context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	r.got = req
	return []*m_outbox.Data{{EventID: "event-1"}}, nil
}

func TestListEvents_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{"default", 0, 100},
		{"explicit", 25, 25},
		{"capped", 5000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &recordingReadModel{}
			events, err := list_events.NewQuery(rm).Execute(context.Background(), &list_events.Request{Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, events, 1)
			assert.Equal(t, tt.want, rm.got.Limit)
		})
	}
}

func TestListEvents_PassesFilters(t *testing.T) {
	rm := &recordingReadModel{}
	eventType := "allocation_token.redeemed"
	status := m_outbox.StatusPending

	_, err := list_events.NewQuery(rm).Execute(context.Background(), &list_events.Request{
		EventType: &eventType,
		Status:    &status,
	})
	require.NoError(t, err)
	assert.Equal(t, &eventType, rm.got.EventType)
	assert.Equal(t, &status, rm.got.Status)
	assert.Nil(t, rm.got.AggregateID)
}
