package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_premium_entry"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/query"
)

// PremiumListRepo implements PremiumListRepository for Spanner.
type PremiumListRepo struct {
	client *spanner.Client
	model  *m_premium_entry.Model
}

// NewPremiumListRepo creates a new PremiumListRepo.
func NewPremiumListRepo(client *spanner.Client) contracts.PremiumListRepository {
	return &PremiumListRepo{
		client: client,
		model:  m_premium_entry.NewModel(),
	}
}

// GetPremiumPrice looks up the premium price of a label in a list.
func (r *PremiumListRepo) GetPremiumPrice(ctx context.Context, listName, label string) (*domain.Money, error) {
	stmt := query.From(m_premium_entry.TableName).
		Select(m_premium_entry.Price, m_premium_entry.Currency).
		Where(query.Eq(m_premium_entry.PremiumListName, listName)).
		Where(query.Eq(m_premium_entry.Label, label)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query premium entry: %w", err)
	}

	var data m_premium_entry.Data
	if err := row.Columns(&data.Price, &data.Currency); err != nil {
		return nil, fmt.Errorf("failed to parse premium entry: %w", err)
	}

	price, err := ratToMoney(&data.Price, data.Currency)
	if err != nil {
		return nil, fmt.Errorf("premium entry %s/%s: %w", listName, label, err)
	}
	return &price, nil
}

// InsertEntryMut creates a mutation that stores one premium entry.
func (r *PremiumListRepo) InsertEntryMut(listName, label string, price domain.Money) *spanner.Mutation {
	return r.model.InsertMut(&m_premium_entry.Data{
		PremiumListName: listName,
		Label:           label,
		Price:           *moneyToRat(price),
		Currency:        price.Currency().Code,
	})
}
