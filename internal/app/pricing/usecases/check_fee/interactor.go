package check_fee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/metrics"
)

// Request contains the data of a fee check.
type Request struct {
	Command     domain.CommandName
	DomainName  string
	RegistrarID string
	// Years defaults to 1 for create and renew. Other commands ignore it.
	Years int
	// Token is the allocation token extension; nil means none was supplied.
	Token *string
	// IsSunrise marks a create during the sunrise period.
	IsSunrise bool
	// IsExpired marks a restore of a domain that has also expired.
	IsExpired bool
	// AsOf pins the pricing instant; zero means now.
	AsOf time.Time
}

// Response contains the computed fees.
type Response struct {
	DomainName string
	Command    domain.CommandName
	Years      int
	AsOf       time.Time
	Fees       *domain.FeesAndCredits
	// Token is the token applied to the price, explicit or default promotion.
	Token *domain.AllocationToken
}

// Interactor handles the check fee use case.
type Interactor struct {
	tldRepo        contracts.TldRepository
	recurrenceRepo contracts.BillingRecurrenceRepository
	resolver       *services.AllocationTokenResolver
	pricing        *services.DomainPricingLogic
	clock          clock.Clock
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewInteractor creates a new check fee interactor.
func NewInteractor(
	tldRepo contracts.TldRepository,
	recurrenceRepo contracts.BillingRecurrenceRepository,
	resolver *services.AllocationTokenResolver,
	pricing *services.DomainPricingLogic,
	clock clock.Clock,
	metrics *metrics.Metrics,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		tldRepo:        tldRepo,
		recurrenceRepo: recurrenceRepo,
		resolver:       resolver,
		pricing:        pricing,
		clock:          clock,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute prices a command for a domain without changing any state.
func (i *Interactor) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	start := time.Now()
	defer func() { i.metrics.ObservePricing(string(req.Command), start, err) }()

	// 1. Parse the name and load the TLD
	name, err := domain.ParseDomainName(req.DomainName)
	if err != nil {
		return nil, err
	}
	tld, err := i.tldRepo.GetByName(ctx, name.Tld())
	if err != nil {
		return nil, err
	}

	asOf := clock.AsOf(i.clock, req.AsOf)
	years := req.Years
	if years == 0 {
		years = 1
	}
	// anchor tenant creates never reach the engine's term check
	if years < 0 {
		return nil, domain.ErrInvalidYears
	}

	// 2. Resolve the allocation token
	tokenReq := services.TokenRequest{
		RegistrarID: req.RegistrarID,
		DomainName:  name.String(),
		Tld:         tld,
		Command:     req.Command,
		Now:         asOf,
	}
	token, err := i.resolveToken(ctx, tokenReq, req.Token)
	if err != nil {
		return nil, err
	}

	// 3. Price the command
	var fees *domain.FeesAndCredits
	switch req.Command {
	case domain.CommandCreate:
		isAnchorTenant := token != nil && token.RegistrationBehavior() == domain.RegistrationBehaviorAnchorTenant
		fees, err = i.pricing.GetCreatePrice(ctx, tld, name.String(), asOf, years, isAnchorTenant, req.IsSunrise, token)
	case domain.CommandRenew:
		recurrence, rerr := i.loadRecurrence(ctx, name.String())
		if rerr != nil {
			return nil, rerr
		}
		fees, err = i.pricing.GetRenewPrice(ctx, tld, name.String(), asOf, years, recurrence, token)
	case domain.CommandTransfer:
		recurrence, rerr := i.loadRecurrence(ctx, name.String())
		if rerr != nil {
			return nil, rerr
		}
		fees, err = i.pricing.GetTransferPrice(ctx, tld, name.String(), asOf, recurrence)
	case domain.CommandRestore:
		fees, err = i.pricing.GetRestorePrice(ctx, tld, name.String(), asOf, req.IsExpired)
	case domain.CommandUpdate:
		fees, err = i.pricing.GetUpdatePrice(ctx, tld, name.String(), asOf)
	default:
		return nil, fmt.Errorf("unsupported command %q", req.Command)
	}
	if err != nil {
		return nil, err
	}

	i.logger.Debug("fee checked",
		zap.String("domain", name.String()),
		zap.String("command", string(req.Command)),
		zap.Int("years", years),
		zap.Stringer("fees", fees),
	)

	return &Response{
		DomainName: name.String(),
		Command:    req.Command,
		Years:      years,
		AsOf:       asOf,
		Fees:       fees,
		Token:      token,
	}, nil
}

// resolveToken applies default promotions to creates and renewals. Other commands
// only validate an explicit token.
func (i *Interactor) resolveToken(ctx context.Context, req services.TokenRequest, extension *string) (*domain.AllocationToken, error) {
	var token *domain.AllocationToken
	var err error
	switch {
	case req.Command == domain.CommandCreate || req.Command == domain.CommandRenew:
		token, err = i.resolver.LoadTokenFromExtensionOrGetDefault(ctx, req, extension)
	case extension != nil:
		token, err = i.resolver.LoadAllocationTokenFromExtension(ctx, req, *extension)
	}

	switch {
	case err != nil:
		i.metrics.IncrementTokenResolution("rejected")
		return nil, err
	case token == nil:
		i.metrics.IncrementTokenResolution("none")
	case extension != nil:
		i.metrics.IncrementTokenResolution("explicit")
	default:
		i.metrics.IncrementTokenResolution("default")
	}
	return token, nil
}

// loadRecurrence returns nil when the domain has no recurrence.
func (i *Interactor) loadRecurrence(ctx context.Context, domainName string) (*domain.BillingRecurrence, error) {
	recurrence, err := i.recurrenceRepo.GetByDomainName(ctx, domainName)
	if errors.Is(err, domain.ErrBillingRecurrenceNotFound) {
		return nil, nil
	}
	return recurrence, err
}
