package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_allocation_token"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/query"
)

// AllocationTokenRepo implements AllocationTokenRepository for Spanner.
type AllocationTokenRepo struct {
	client *spanner.Client
	model  *m_allocation_token.Model
}

// NewAllocationTokenRepo creates a new AllocationTokenRepo.
func NewAllocationTokenRepo(client *spanner.Client) contracts.AllocationTokenRepository {
	return &AllocationTokenRepo{
		client: client,
		model:  m_allocation_token.NewModel(),
	}
}

// GetByToken loads a token by its string.
func (r *AllocationTokenRepo) GetByToken(ctx context.Context, token string) (*domain.AllocationToken, error) {
	row, err := r.client.Single().ReadRow(ctx, m_allocation_token.TableName, spanner.Key{token}, m_allocation_token.Columns)
	return r.rowToDomain(token, row, err)
}

// GetByTokenInTxn loads a token inside a read-write transaction.
func (r *AllocationTokenRepo) GetByTokenInTxn(ctx context.Context, txn committer.Transaction, token string) (*domain.AllocationToken, error) {
	row, err := txn.ReadRow(ctx, m_allocation_token.TableName, spanner.Key{token}, m_allocation_token.Columns)
	return r.rowToDomain(token, row, err)
}

// GetByTokens loads every existing token among the given strings in one read.
func (r *AllocationTokenRepo) GetByTokens(ctx context.Context, tokens []string) (map[string]*domain.AllocationToken, error) {
	result := make(map[string]*domain.AllocationToken, len(tokens))
	if len(tokens) == 0 {
		return result, nil
	}

	stmt := query.From(m_allocation_token.TableName).
		Select(m_allocation_token.Columns...).
		Where(query.In(m_allocation_token.Token, tokens)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate allocation tokens: %w", err)
		}

		var data m_allocation_token.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse allocation token: %w", err)
		}
		token, err := AllocationTokenFromData(&data)
		if err != nil {
			return nil, err
		}
		result[token.Token()] = token
	}

	return result, nil
}

// InsertMut creates a mutation for inserting a new token.
func (r *AllocationTokenRepo) InsertMut(token *domain.AllocationToken) (*spanner.Mutation, error) {
	data, err := AllocationTokenToData(token)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// RedeemMut creates a mutation stamping the redemption and bumping the version.
func (r *AllocationTokenRepo) RedeemMut(token *domain.AllocationToken) *spanner.Mutation {
	return r.model.UpdateMut(token.Token(), map[string]interface{}{
		m_allocation_token.RedemptionHistoryID: nullString(token.RedemptionHistoryID()),
		m_allocation_token.Version:             token.Version() + 1,
	})
}

func (r *AllocationTokenRepo) rowToDomain(token string, row *spanner.Row, err error) (*domain.AllocationToken, error) {
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrNonexistentAllocationToken, token)
		}
		return nil, fmt.Errorf("failed to read allocation token: %w", err)
	}

	var data m_allocation_token.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse allocation token: %w", err)
	}

	return AllocationTokenFromData(&data)
}

// AllocationTokenToData converts a domain token to database Data.
func AllocationTokenToData(token *domain.AllocationToken) (*m_allocation_token.Data, error) {
	p := token.Params()

	data := &m_allocation_token.Data{
		Token:                p.Token,
		TokenType:            string(p.TokenType),
		TokenBehavior:        string(p.TokenBehavior),
		RedemptionHistoryID:  nullString(p.RedemptionHistoryID),
		DomainName:           nullString(p.DomainName),
		AllowedRegistrarIDs:  p.AllowedRegistrarIDs,
		AllowedTlds:          p.AllowedTlds,
		AllowedEppActions:    make([]string, 0, len(p.AllowedEppActions)),
		DiscountYears:        int64(p.DiscountYears),
		DiscountPremiums:     p.DiscountPremiums,
		RegistrationBehavior: string(p.RegistrationBehavior),
		RenewalPriceBehavior: string(p.RenewalPriceBehavior),
		Version:              p.Version,
	}
	for _, action := range p.AllowedEppActions {
		data.AllowedEppActions = append(data.AllowedEppActions, string(action))
	}

	switch d := p.Discount.(type) {
	case domain.FractionDiscount:
		data.DiscountFraction = spanner.NullNumeric{Numeric: *d.Fraction.Rat(), Valid: true}
	case domain.FixedPriceDiscount:
		data.DiscountPrice, data.DiscountCurrency = nullMoney(&d.Price)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported discount %T", domain.ErrInvalidAllocationToken, p.Token, p.Discount)
	}

	data.RenewalPrice, data.RenewalCurrency = nullMoney(p.RenewalPrice)

	entries := p.StatusTransitions.Entries()
	statuses := make([]m_allocation_token.StatusTransitionData, 0, len(entries))
	for _, e := range entries {
		statuses = append(statuses, m_allocation_token.StatusTransitionData{At: e.At, Status: string(e.Value)})
	}
	data.StatusTransitions = toNullJSON(statuses)

	return data, nil
}

// AllocationTokenFromData converts database Data to a domain token.
func AllocationTokenFromData(data *m_allocation_token.Data) (*domain.AllocationToken, error) {
	p := domain.AllocationTokenParams{
		Token:                data.Token,
		TokenType:            domain.TokenType(data.TokenType),
		TokenBehavior:        domain.TokenBehavior(data.TokenBehavior),
		RedemptionHistoryID:  data.RedemptionHistoryID.StringVal,
		DomainName:           data.DomainName.StringVal,
		AllowedRegistrarIDs:  data.AllowedRegistrarIDs,
		AllowedTlds:          data.AllowedTlds,
		DiscountYears:        int(data.DiscountYears),
		DiscountPremiums:     data.DiscountPremiums,
		RegistrationBehavior: domain.RegistrationBehavior(data.RegistrationBehavior),
		RenewalPriceBehavior: domain.RenewalPriceBehavior(data.RenewalPriceBehavior),
		Version:              data.Version,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}

	for _, action := range data.AllowedEppActions {
		command, err := domain.ParseCommandName(action)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", data.Token, err)
		}
		p.AllowedEppActions = append(p.AllowedEppActions, command)
	}

	switch {
	case data.DiscountPrice.Valid:
		price, err := fromNullMoney(data.DiscountPrice, data.DiscountCurrency)
		if err != nil {
			return nil, fmt.Errorf("token %s discount price: %w", data.Token, err)
		}
		p.Discount = domain.FixedPriceDiscount{Price: *price}
	case data.DiscountFraction.Valid:
		p.Discount = domain.FractionDiscount{Fraction: decimal.NewFromBigRat(&data.DiscountFraction.Numeric, 9)}
	}

	renewal, err := fromNullMoney(data.RenewalPrice, data.RenewalCurrency)
	if err != nil {
		return nil, fmt.Errorf("token %s renewal price: %w", data.Token, err)
	}
	p.RenewalPrice = renewal

	var statuses []m_allocation_token.StatusTransitionData
	if _, err := decodeNullJSON(data.StatusTransitions, &statuses); err != nil {
		return nil, fmt.Errorf("token %s status transitions: %w", data.Token, err)
	}
	if len(statuses) > 0 {
		entries := make([]domain.Transition[domain.TokenStatus], 0, len(statuses))
		for _, s := range statuses {
			entries = append(entries, domain.Transition[domain.TokenStatus]{At: s.At, Value: domain.TokenStatus(s.Status)})
		}
		p.StatusTransitions, err = domain.NewTimedTransitionsFromList(entries)
		if err != nil {
			return nil, fmt.Errorf("token %s status transitions: %w", data.Token, err)
		}
	}

	return domain.NewAllocationToken(p)
}
