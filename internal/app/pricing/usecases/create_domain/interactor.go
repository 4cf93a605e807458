package create_domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/metrics"
)

// Request contains the data of a domain create.
type Request struct {
	DomainName  string
	RegistrarID string
	Years       int
	Token       *string
	IsSunrise   bool
}

// Response describes the committed create.
type Response struct {
	HistoryID     string
	DomainName    string
	Fees          *domain.FeesAndCredits
	RecurrenceID  string
	RedeemedToken string
	CreatedAt     time.Time
}

// Interactor handles the create domain use case: it prices the create, redeems a
// single-use token and opens the autorenew recurrence in one transaction.
type Interactor struct {
	tldRepo        contracts.TldRepository
	tokenRepo      contracts.AllocationTokenRepository
	recurrenceRepo contracts.BillingRecurrenceRepository
	outboxRepo     contracts.OutboxRepository
	resolver       *services.AllocationTokenResolver
	pricing        *services.DomainPricingLogic
	committer      committer.Runner
	clock          clock.Clock
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewInteractor creates a new create domain interactor.
func NewInteractor(
	tldRepo contracts.TldRepository,
	tokenRepo contracts.AllocationTokenRepository,
	recurrenceRepo contracts.BillingRecurrenceRepository,
	outboxRepo contracts.OutboxRepository,
	resolver *services.AllocationTokenResolver,
	pricing *services.DomainPricingLogic,
	committer committer.Runner,
	clock clock.Clock,
	metrics *metrics.Metrics,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		tldRepo:        tldRepo,
		tokenRepo:      tokenRepo,
		recurrenceRepo: recurrenceRepo,
		outboxRepo:     outboxRepo,
		resolver:       resolver,
		pricing:        pricing,
		committer:      committer,
		clock:          clock,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute prices and commits a domain create.
func (i *Interactor) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	start := time.Now()
	defer func() { i.metrics.ObservePricing(string(domain.CommandCreate), start, err) }()

	years := req.Years
	if years == 0 {
		years = 1
	}
	// anchor tenant creates never reach the engine's term check
	if years < 0 {
		return nil, domain.ErrInvalidYears
	}

	// 1. Parse the name and load the TLD
	name, err := domain.ParseDomainName(req.DomainName)
	if err != nil {
		return nil, err
	}
	tld, err := i.tldRepo.GetByName(ctx, name.Tld())
	if err != nil {
		return nil, err
	}
	now := i.clock.Now()

	// 2. Resolve the token
	token, err := i.resolver.LoadTokenFromExtensionOrGetDefault(ctx, services.TokenRequest{
		RegistrarID: req.RegistrarID,
		DomainName:  name.String(),
		Tld:         tld,
		Command:     domain.CommandCreate,
		Now:         now,
	}, req.Token)
	if err != nil {
		return nil, err
	}

	// 3. Price the create
	isAnchorTenant := token != nil && token.RegistrationBehavior() == domain.RegistrationBehaviorAnchorTenant
	fees, err := i.pricing.GetCreatePrice(ctx, tld, name.String(), now, years, isAnchorTenant, req.IsSunrise, token)
	if err != nil {
		return nil, err
	}

	// 4. Build the recurrence
	historyID := uuid.New().String()
	recurrence, err := newRecurrence(name.String(), req.RegistrarID, now, isAnchorTenant, token)
	if err != nil {
		return nil, err
	}

	// 5. Commit redemption, recurrence and outbox events together
	var redeemed string
	err = i.committer.RunInTransaction(ctx, func(ctx context.Context, txn committer.Transaction) error {
		redeemed = ""
		plan := committer.NewPlan()
		var events []domain.DomainEvent

		if token != nil && token.TokenType().IsOneTimeUse() {
			// re-read under the transaction so concurrent redemptions serialize
			current, err := i.tokenRepo.GetByTokenInTxn(ctx, txn, token.Token())
			if err != nil {
				return err
			}
			if current.IsRedeemed() {
				return domain.ErrAlreadyRedeemedAllocationToken
			}
			updated, err := services.RedeemToken(current, historyID, now)
			if err != nil {
				return err
			}
			plan.Add(i.tokenRepo.RedeemMut(updated))
			redeemed = updated.Token()
			events = append(events, &domain.TokenRedeemedEvent{
				Token:       updated.Token(),
				HistoryID:   historyID,
				DomainName:  name.String(),
				RegistrarID: req.RegistrarID,
				RedeemedAt:  now,
			})
		}

		recurrenceMut, err := i.recurrenceRepo.InsertMut(recurrence)
		if err != nil {
			return err
		}
		plan.Add(recurrenceMut)
		events = append(events, recurrenceCreatedEvent(recurrence, now), &domain.DomainCreatePricedEvent{
			HistoryID:   historyID,
			DomainName:  name.String(),
			RegistrarID: req.RegistrarID,
			Currency:    fees.Currency().Code,
			CreateCost:  fees.CreateCost().AmountString(),
			EapCost:     fees.EapCost().AmountString(),
			IsPremium:   fees.HasAnyPremiumFees(),
			Token:       tokenString(token),
			PricedAt:    now,
		})

		muts, err := i.outboxRepo.StageMuts(events)
		if err != nil {
			return err
		}
		plan.AddMultiple(muts)

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit domain create: %w", err)
	}

	if redeemed != "" {
		i.metrics.IncrementTokensRedeemed()
	}
	i.logger.Info("domain create priced",
		zap.String("domain", name.String()),
		zap.String("registrar", req.RegistrarID),
		zap.String("history_id", historyID),
		zap.Stringer("fees", fees),
		zap.String("redeemed_token", redeemed),
	)

	return &Response{
		HistoryID:     historyID,
		DomainName:    name.String(),
		Fees:          fees,
		RecurrenceID:  recurrence.ID(),
		RedeemedToken: redeemed,
		CreatedAt:     now,
	}, nil
}

// newRecurrence derives the renewal behavior of the new domain: anchor tenants renew
// at the standard price, otherwise the token's renewal behavior (and SPECIFIED price)
// carries over.
func newRecurrence(
	domainName, registrarID string,
	at time.Time,
	isAnchorTenant bool,
	token *domain.AllocationToken,
) (*domain.BillingRecurrence, error) {
	params := domain.BillingRecurrenceParams{
		ID:                   uuid.New().String(),
		DomainName:           domainName,
		RegistrarID:          registrarID,
		RenewalPriceBehavior: domain.RenewalPriceBehaviorDefault,
		EventTime:            at,
	}
	switch {
	case isAnchorTenant:
		params.RenewalPriceBehavior = domain.RenewalPriceBehaviorNonpremium
	case token != nil:
		params.RenewalPriceBehavior = token.RenewalPriceBehavior()
		if price, ok := token.RenewalPrice(); ok {
			params.RenewalPrice = &price
		}
	}
	return domain.NewBillingRecurrence(params)
}

func recurrenceCreatedEvent(r *domain.BillingRecurrence, at time.Time) *domain.BillingRecurrenceCreatedEvent {
	event := &domain.BillingRecurrenceCreatedEvent{
		RecurrenceID:         r.ID(),
		DomainName:           r.DomainName(),
		RegistrarID:          r.RegistrarID(),
		RenewalPriceBehavior: string(r.RenewalPriceBehavior()),
		CreatedAt:            at,
	}
	if price, ok := r.RenewalPrice(); ok {
		event.RenewalPrice = price.String()
	}
	return event
}

func tokenString(token *domain.AllocationToken) string {
	if token == nil {
		return ""
	}
	return token.Token()
}
