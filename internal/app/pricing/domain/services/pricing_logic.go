package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
)

// DefaultSunriseDiscount is the fraction taken off sunrise creates unless configured.
var DefaultSunriseDiscount = decimal.RequireFromString("0.15")

// DomainPricingLogic computes fees for create, renew, restore, transfer and update.
//
// Every method is a pure function of its arguments, the TLD schedules and the premium
// lookup, so it can be called repeatedly within one transaction with the same result.
// Allocation tokens are passed in already resolved; nil means no token.
type DomainPricingLogic struct {
	premiumPricer   PremiumPricer
	customLogic     CustomLogic
	sunriseDiscount decimal.Decimal
}

// NewDomainPricingLogic creates the pricing logic. sunriseDiscount is the fraction
// (0 to 1) taken off sunrise creates.
func NewDomainPricingLogic(premiumPricer PremiumPricer, customLogic CustomLogic, sunriseDiscount decimal.Decimal) *DomainPricingLogic {
	return &DomainPricingLogic{
		premiumPricer:   premiumPricer,
		customLogic:     customLogic.withDefaults(),
		sunriseDiscount: sunriseDiscount,
	}
}

// GetCreatePrice returns the create fee, plus the EAP fee when one is in effect.
//
// Anchor tenants never pay create or EAP fees. A token is applied to the premium
// lookup result first (NONPREMIUM_CREATE, NONPREMIUM and SPECIFIED handling) and then
// to the multi-year total. The sunrise discount applies after token discounts.
func (l *DomainPricingLogic) GetCreatePrice(
	ctx context.Context,
	tld *domain.Tld,
	domainName string,
	asOf time.Time,
	years int,
	isAnchorTenant bool,
	isSunriseCreate bool,
	token *domain.AllocationToken,
) (*domain.FeesAndCredits, error) {
	name, err := domain.ParseDomainName(domainName)
	if err != nil {
		return nil, err
	}

	var createFee domain.Fee
	if isAnchorTenant {
		createFee = domain.NewFee(decimal.Zero, domain.FeeTypeCreate, false)
	} else {
		prices, err := l.premiumPricer.DomainPrices(ctx, tld, name, asOf)
		if err != nil {
			return nil, err
		}
		if token != nil {
			prices, err = applyTokenToDomainPrices(prices, tld, asOf, years, token)
			if err != nil {
				return nil, err
			}
		}
		cost, err := domainCostWithDiscount(prices.IsPremium, years, token, prices.CreateCost, &prices.RenewCost, tld)
		if err != nil {
			return nil, err
		}
		if isSunriseCreate {
			cost = cost.MultipliedByFraction(decimal.NewFromInt(1).Sub(l.sunriseDiscount))
		}
		createFee = domain.NewFee(cost.Amount(), domain.FeeTypeCreate, prices.IsPremium)
	}

	fees := domain.NewFeesAndCredits(tld.Currency(), createFee)
	if eapFee := tld.EapFeeFor(asOf); !isAnchorTenant && !eapFee.HasZeroCost() {
		fees = fees.WithFee(eapFee)
	}

	return l.customLogic.Create.CustomizeCreatePrice(ctx, PriceParameters{
		FeesAndCredits: fees,
		Tld:            tld,
		DomainName:     name,
		AsOfDate:       asOf,
		Years:          years,
	})
}

// GetRenewPrice returns the renewal fee for the given term.
//
// recurrence is nil when the domain does not exist yet. A SPECIFIED recurrence always
// renews at its captured price and ignores the token.
func (l *DomainPricingLogic) GetRenewPrice(
	ctx context.Context,
	tld *domain.Tld,
	domainName string,
	asOf time.Time,
	years int,
	recurrence *domain.BillingRecurrence,
	token *domain.AllocationToken,
) (*domain.FeesAndCredits, error) {
	if years <= 0 {
		return nil, domain.ErrInvalidYears
	}
	name, err := domain.ParseDomainName(domainName)
	if err != nil {
		return nil, err
	}
	prices, err := l.premiumPricer.DomainPrices(ctx, tld, name, asOf)
	if err != nil {
		return nil, err
	}

	behavior := domain.RenewalPriceBehaviorDefault
	if recurrence != nil {
		behavior = recurrence.RenewalPriceBehavior()
	}

	var renewCost domain.Money
	var isPremium bool
	switch behavior {
	case domain.RenewalPriceBehaviorDefault:
		renewCost, err = domainRenewCostWithDiscount(tld, prices, asOf, years, token)
		isPremium = prices.IsPremium
	case domain.RenewalPriceBehaviorSpecified:
		price, ok := recurrence.RenewalPrice()
		if !ok {
			return nil, fmt.Errorf("recurrence %s: %w", recurrence.ID(), domain.ErrMissingRenewalPrice)
		}
		renewCost = price.MultipliedBy(years)
	case domain.RenewalPriceBehaviorNonpremium:
		renewCost, err = domainCostWithDiscount(false, years, token, tld.StandardRenewCost(asOf), nil, tld)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRenewalPriceBehavior, behavior)
	}
	if err != nil {
		return nil, err
	}

	return l.customLogic.Renew.CustomizeRenewPrice(ctx, PriceParameters{
		FeesAndCredits: domain.NewFeesAndCredits(renewCost.Currency(),
			domain.NewFee(renewCost.Amount(), domain.FeeTypeRenew, isPremium)),
		Tld:        tld,
		DomainName: name,
		AsOfDate:   asOf,
		Years:      years,
	})
}

// GetRestorePrice returns the flat restore fee, plus one year of renewal when the
// domain has also expired.
func (l *DomainPricingLogic) GetRestorePrice(
	ctx context.Context,
	tld *domain.Tld,
	domainName string,
	asOf time.Time,
	isExpired bool,
) (*domain.FeesAndCredits, error) {
	name, err := domain.ParseDomainName(domainName)
	if err != nil {
		return nil, err
	}
	prices, err := l.premiumPricer.DomainPrices(ctx, tld, name, asOf)
	if err != nil {
		return nil, err
	}

	fees := domain.NewFeesAndCredits(tld.Currency(),
		domain.NewFee(tld.RestoreBillingCost().Amount(), domain.FeeTypeRestore, false))
	if isExpired {
		fees = fees.WithFee(domain.NewFee(prices.RenewCost.Amount(), domain.FeeTypeRenew, prices.IsPremium))
	}

	return l.customLogic.Restore.CustomizeRestorePrice(ctx, PriceParameters{
		FeesAndCredits: fees,
		Tld:            tld,
		DomainName:     name,
		AsOfDate:       asOf,
	})
}

// GetTransferPrice returns the fee for a transfer, which is one year of renewal.
func (l *DomainPricingLogic) GetTransferPrice(
	ctx context.Context,
	tld *domain.Tld,
	domainName string,
	asOf time.Time,
	recurrence *domain.BillingRecurrence,
) (*domain.FeesAndCredits, error) {
	renew, err := l.GetRenewPrice(ctx, tld, domainName, asOf, 1, recurrence, nil)
	if err != nil {
		return nil, err
	}
	name, err := domain.ParseDomainName(domainName)
	if err != nil {
		return nil, err
	}

	return l.customLogic.Transfer.CustomizeTransferPrice(ctx, PriceParameters{
		FeesAndCredits: domain.NewFeesAndCredits(tld.Currency(),
			domain.NewFee(renew.RenewCost().Amount(), domain.FeeTypeRenew, renew.HasAnyPremiumFees())),
		Tld:        tld,
		DomainName: name,
		AsOfDate:   asOf,
	})
}

// GetUpdatePrice returns a zero update fee.
func (l *DomainPricingLogic) GetUpdatePrice(
	ctx context.Context,
	tld *domain.Tld,
	domainName string,
	asOf time.Time,
) (*domain.FeesAndCredits, error) {
	name, err := domain.ParseDomainName(domainName)
	if err != nil {
		return nil, err
	}

	return l.customLogic.Update.CustomizeUpdatePrice(ctx, PriceParameters{
		FeesAndCredits: domain.NewFeesAndCredits(tld.Currency(),
			domain.NewFee(decimal.Zero, domain.FeeTypeUpdate, false)),
		Tld:        tld,
		DomainName: name,
		AsOfDate:   asOf,
	})
}

// domainRenewCostWithDiscount short-circuits anchor-tenant and NONPREMIUM tokens to
// the standard price and SPECIFIED tokens to their renewal price before falling back
// to the discount algorithm.
func domainRenewCostWithDiscount(
	tld *domain.Tld,
	prices domain.DomainPrices,
	asOf time.Time,
	years int,
	token *domain.AllocationToken,
) (domain.Money, error) {
	if token != nil {
		if token.RegistrationBehavior() == domain.RegistrationBehaviorAnchorTenant ||
			token.RenewalPriceBehavior() == domain.RenewalPriceBehaviorNonpremium {
			return tld.StandardRenewCost(asOf).MultipliedBy(years), nil
		}
		if token.RenewalPriceBehavior() == domain.RenewalPriceBehaviorSpecified {
			// the specified price covers the whole term
			price, _ := token.RenewalPrice()
			return price, nil
		}
	}
	return domainCostWithDiscount(prices.IsPremium, years, token, prices.RenewCost, nil, tld)
}

// domainCostWithDiscount returns the cost of a term of years.
//
// For creates, firstYearCost is the create cost and subsequentYearCost the renew cost.
// For renewals, firstYearCost is the renew cost and subsequentYearCost is nil.
func domainCostWithDiscount(
	isPremium bool,
	years int,
	token *domain.AllocationToken,
	firstYearCost domain.Money,
	subsequentYearCost *domain.Money,
	tld *domain.Tld,
) (domain.Money, error) {
	if years <= 0 {
		return domain.Money{}, fmt.Errorf("registration years to get cost for: %w", domain.ErrInvalidYears)
	}
	if token != nil && DiscountTokenInvalidForPremiumName(token, isPremium) {
		return domain.Money{}, domain.ErrAllocationTokenInvalidForPremiumName
	}

	subsequent := firstYearCost
	if subsequentYearCost != nil {
		subsequent = *subsequentYearCost
	}
	total, err := firstYearCost.Plus(subsequent.MultipliedBy(years - 1))
	if err != nil {
		return domain.Money{}, err
	}

	if token == nil || token.TokenBehavior() != domain.TokenBehaviorDefault {
		return total, nil
	}

	switch d := token.Discount().(type) {
	case domain.FixedPriceDiscount:
		if d.Price.Currency() != tld.Currency() {
			return domain.Money{}, domain.ErrAllocationTokenInvalidForCurrency
		}
		nonDiscountedYears := max(0, years-token.DiscountYears())
		return d.Price.MultipliedBy(token.DiscountYears()).Plus(subsequent.MultipliedBy(nonDiscountedYears))
	case domain.FractionDiscount:
		discountedYears := min(years, token.DiscountYears())
		if discountedYears == 0 {
			return total, nil
		}
		discountedCost, err := firstYearCost.Plus(subsequent.MultipliedBy(discountedYears - 1))
		if err != nil {
			return domain.Money{}, err
		}
		return total.Minus(discountedCost.MultipliedByFraction(d.Fraction))
	}
	return total, nil
}

// applyTokenToDomainPrices substitutes standard or token-specified prices for the
// premium lookup result. The create becomes non-premium only when no premium charge
// survives anywhere in the term: a single year, or renewals the token already forces
// off the premium price.
func applyTokenToDomainPrices(
	prices domain.DomainPrices,
	tld *domain.Tld,
	asOf time.Time,
	years int,
	token *domain.AllocationToken,
) (domain.DomainPrices, error) {
	nonpremiumCreate := token.RegistrationBehavior() == domain.RegistrationBehaviorNonpremiumCreate
	convertToNonPremium := nonpremiumCreate &&
		(years == 1 || token.RenewalPriceBehavior() != domain.RenewalPriceBehaviorDefault)

	createCost := prices.CreateCost
	if nonpremiumCreate {
		createCost = tld.CreateBillingCost(asOf)
	}

	renewCost := prices.RenewCost
	switch token.RenewalPriceBehavior() {
	case domain.RenewalPriceBehaviorNonpremium:
		renewCost = tld.StandardRenewCost(asOf)
	case domain.RenewalPriceBehaviorSpecified:
		price, ok := token.RenewalPrice()
		if !ok {
			return domain.DomainPrices{}, fmt.Errorf("token %s: %w", token.Token(), domain.ErrMissingRenewalPrice)
		}
		renewCost = price
	}

	return domain.DomainPrices{
		IsPremium:  prices.IsPremium && !convertToNonPremium,
		CreateCost: createCost,
		RenewCost:  renewCost,
	}, nil
}
