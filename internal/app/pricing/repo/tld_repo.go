package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_tld"
)

// TldRepo implements TldRepository for Spanner.
type TldRepo struct {
	client *spanner.Client
	model  *m_tld.Model
}

// NewTldRepo creates a new TldRepo.
func NewTldRepo(client *spanner.Client) contracts.TldRepository {
	return &TldRepo{
		client: client,
		model:  m_tld.NewModel(),
	}
}

// GetByName loads the pricing configuration of a TLD.
func (r *TldRepo) GetByName(ctx context.Context, name string) (*domain.Tld, error) {
	row, err := r.client.Single().ReadRow(ctx, m_tld.TableName, spanner.Key{name}, m_tld.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrTldNotFound, name)
		}
		return nil, fmt.Errorf("failed to read tld: %w", err)
	}

	var data m_tld.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse tld: %w", err)
	}

	return TldFromData(&data)
}

// InsertMut creates a mutation storing the TLD configuration.
func (r *TldRepo) InsertMut(tld *domain.Tld) (*spanner.Mutation, error) {
	return r.model.InsertMut(TldToData(tld)), nil
}

// TldToData converts a domain Tld to database Data.
func TldToData(tld *domain.Tld) *m_tld.Data {
	cfg := tld.Config()

	data := &m_tld.Data{
		TldName:              cfg.Name,
		Currency:             cfg.Currency.Code,
		RenewCostTransitions: toNullJSON(transitionsToData(cfg.RenewCost)),
		RestoreCost:          *moneyToRat(cfg.RestoreCost),
		PremiumListName:      nullString(cfg.PremiumListName),
		DefaultPromoTokens:   cfg.DefaultPromoTokens,
	}
	if cfg.CreateCost != nil {
		data.CreateCostTransitions = toNullJSON(transitionsToData(*cfg.CreateCost))
	}
	if cfg.EapFee != nil {
		data.EapFeeTransitions = toNullJSON(transitionsToData(*cfg.EapFee))
	}
	return data
}

// TldFromData converts database Data to a domain Tld.
func TldFromData(data *m_tld.Data) (*domain.Tld, error) {
	currency, err := domain.CurrencyOf(data.Currency)
	if err != nil {
		return nil, fmt.Errorf("tld %s: %w", data.TldName, err)
	}

	renew, ok, err := transitionsFromData(data.RenewCostTransitions, currency)
	if err != nil {
		return nil, fmt.Errorf("tld %s renew cost: %w", data.TldName, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: renew cost schedule is missing", domain.ErrInvalidTld, data.TldName)
	}

	cfg := domain.TldConfig{
		Name:               data.TldName,
		Currency:           currency,
		RenewCost:          renew,
		PremiumListName:    data.PremiumListName.StringVal,
		DefaultPromoTokens: data.DefaultPromoTokens,
	}

	if create, ok, err := transitionsFromData(data.CreateCostTransitions, currency); err != nil {
		return nil, fmt.Errorf("tld %s create cost: %w", data.TldName, err)
	} else if ok {
		cfg.CreateCost = &create
	}
	if eap, ok, err := transitionsFromData(data.EapFeeTransitions, currency); err != nil {
		return nil, fmt.Errorf("tld %s eap fee: %w", data.TldName, err)
	} else if ok {
		cfg.EapFee = &eap
	}

	cfg.RestoreCost, err = ratToMoney(&data.RestoreCost, data.Currency)
	if err != nil {
		return nil, fmt.Errorf("tld %s restore cost: %w", data.TldName, err)
	}

	return domain.NewTld(cfg)
}

func transitionsToData(tt domain.TimedTransitions[domain.Money]) []m_tld.TransitionData {
	entries := tt.Entries()
	out := make([]m_tld.TransitionData, 0, len(entries))
	for _, e := range entries {
		out = append(out, m_tld.TransitionData{At: e.At, Amount: e.Value.AmountString()})
	}
	return out
}

func transitionsFromData(col spanner.NullJSON, currency domain.CurrencyUnit) (domain.TimedTransitions[domain.Money], bool, error) {
	var raw []m_tld.TransitionData
	ok, err := decodeNullJSON(col, &raw)
	if err != nil || !ok {
		return domain.TimedTransitions[domain.Money]{}, false, err
	}

	entries := make([]domain.Transition[domain.Money], 0, len(raw))
	for _, e := range raw {
		amount, err := domain.MoneyOf(currency, e.Amount)
		if err != nil {
			return domain.TimedTransitions[domain.Money]{}, false, err
		}
		entries = append(entries, domain.Transition[domain.Money]{At: e.At, Value: amount})
	}
	tt, err := domain.NewTimedTransitionsFromList(entries)
	if err != nil {
		return domain.TimedTransitions[domain.Money]{}, false, err
	}
	return tt, true, nil
}
