package contracts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

func TestNewOutboxEvent(t *testing.T) {
	at := time.Date(2023, time.May, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		event         domain.DomainEvent
		wantType      string
		wantAggregate string
		wantPayload   string
	}{
		{
			name:          "token redeemed",
			event:         &domain.TokenRedeemedEvent{Token: "abc123", HistoryID: "h1", DomainName: "standard.example", RedeemedAt: at},
			wantType:      domain.EventTypeTokenRedeemed,
			wantAggregate: "abc123",
			wantPayload:   `"HistoryID":"h1"`,
		},
		{
			name:          "recurrence created",
			event:         &domain.BillingRecurrenceCreatedEvent{RecurrenceID: "r1", RenewalPriceBehavior: "DEFAULT", CreatedAt: at},
			wantType:      domain.EventTypeBillingRecurrenceCreated,
			wantAggregate: "r1",
			wantPayload:   `"RenewalPriceBehavior":"DEFAULT"`,
		},
		{
			name:          "create priced",
			event:         &domain.DomainCreatePricedEvent{HistoryID: "h1", CreateCost: "13.00", PricedAt: at},
			wantType:      domain.EventTypeDomainCreatePriced,
			wantAggregate: "h1",
			wantPayload:   `"CreateCost":"13.00"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := contracts.NewOutboxEvent("e1", tt.event)
			require.NoError(t, err)
			assert.Equal(t, "e1", event.EventID)
			assert.Equal(t, tt.wantType, event.EventType)
			assert.Equal(t, tt.wantAggregate, event.AggregateID)
			assert.Contains(t, event.Payload, tt.wantPayload)
			assert.Empty(t, event.Status)
		})
	}
}
