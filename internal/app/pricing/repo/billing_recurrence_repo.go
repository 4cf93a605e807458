package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_billing_recurrence"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/query"
)

// BillingRecurrenceRepo implements BillingRecurrenceRepository for Spanner.
type BillingRecurrenceRepo struct {
	client *spanner.Client
	model  *m_billing_recurrence.Model
}

// NewBillingRecurrenceRepo creates a new BillingRecurrenceRepo.
func NewBillingRecurrenceRepo(client *spanner.Client) contracts.BillingRecurrenceRepository {
	return &BillingRecurrenceRepo{
		client: client,
		model:  m_billing_recurrence.NewModel(),
	}
}

// GetByDomainName loads the most recent recurrence of a domain.
func (r *BillingRecurrenceRepo) GetByDomainName(ctx context.Context, domainName string) (*domain.BillingRecurrence, error) {
	stmt := query.From(m_billing_recurrence.TableName).
		Select(m_billing_recurrence.Columns...).
		Where(query.Eq(m_billing_recurrence.DomainName, domainName)).
		OrderBy(m_billing_recurrence.EventTime, query.Desc).
		Limit(1).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("%w: %s", domain.ErrBillingRecurrenceNotFound, domainName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query billing recurrence: %w", err)
	}

	var data m_billing_recurrence.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse billing recurrence: %w", err)
	}

	return BillingRecurrenceFromData(&data)
}

// InsertMut creates a mutation for inserting a new recurrence.
func (r *BillingRecurrenceRepo) InsertMut(recurrence *domain.BillingRecurrence) (*spanner.Mutation, error) {
	data := &m_billing_recurrence.Data{
		RecurrenceID:         recurrence.ID(),
		DomainName:           recurrence.DomainName(),
		RegistrarID:          recurrence.RegistrarID(),
		RenewalPriceBehavior: string(recurrence.RenewalPriceBehavior()),
		EventTime:            recurrence.EventTime(),
		RecurrenceEndTime:    recurrence.RecurrenceEndTime(),
	}
	if price, ok := recurrence.RenewalPrice(); ok {
		data.RenewalPrice, data.RenewalPriceCurrency = nullMoney(&price)
	}
	return r.model.InsertMut(data), nil
}

// BillingRecurrenceFromData converts database Data to a domain recurrence.
func BillingRecurrenceFromData(data *m_billing_recurrence.Data) (*domain.BillingRecurrence, error) {
	price, err := fromNullMoney(data.RenewalPrice, data.RenewalPriceCurrency)
	if err != nil {
		return nil, fmt.Errorf("recurrence %s renewal price: %w", data.RecurrenceID, err)
	}
	return domain.NewBillingRecurrence(domain.BillingRecurrenceParams{
		ID:                   data.RecurrenceID,
		DomainName:           data.DomainName,
		RegistrarID:          data.RegistrarID,
		RenewalPriceBehavior: domain.RenewalPriceBehavior(data.RenewalPriceBehavior),
		RenewalPrice:         price,
		EventTime:            data.EventTime,
		RecurrenceEndTime:    data.RecurrenceEndTime,
	})
}
