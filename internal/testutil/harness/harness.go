// Package harness wires the pricing use cases over the in-memory store.
package harness

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/get_token"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/create_domain"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/registry-pricing-service/internal/testutil"
)

// Services holds all use cases and queries over one memory store.
type Services struct {
	// Commands
	CheckFee     *check_fee.Interactor
	CreateDomain *create_domain.Interactor

	// Queries
	GetToken   *get_token.Query
	ListEvents *list_events.Query

	// Infrastructure
	Store    *testutil.Store
	Premium  *testutil.MemoryPremiumListRepo
	Runner   *testutil.FakeRunner
	Clock    *clock.MockClock
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// New builds Services at testutil.Now with the "example" TLD seeded.
func New(t *testing.T) *Services {
	t.Helper()

	store := testutil.NewStore()
	testutil.SeedExample(t, store)

	clk := testutil.NewMockClock()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	logger := zaptest.NewLogger(t)

	// Repositories
	tldRepo := testutil.NewMemoryTldRepo(store)
	premiumRepo := testutil.NewMemoryPremiumListRepo(store)
	tokenRepo := testutil.NewMemoryAllocationTokenRepo(store)
	recurrenceRepo := testutil.NewMemoryBillingRecurrenceRepo(store)
	outboxRepo := testutil.NewMemoryOutboxRepo(store)
	runner := testutil.NewFakeRunner(store)

	// Domain services
	premiumPricer := services.NewStaticPremiumListPricingEngine(premiumRepo)
	pricing := services.NewDomainPricingLogic(premiumPricer, services.DefaultCustomLogic(), services.DefaultSunriseDiscount)
	resolver := services.NewAllocationTokenResolver(tokenRepo, premiumPricer)

	return &Services{
		CheckFee:     check_fee.NewInteractor(tldRepo, recurrenceRepo, resolver, pricing, clk, m, logger),
		CreateDomain: create_domain.NewInteractor(tldRepo, tokenRepo, recurrenceRepo, outboxRepo, resolver, pricing, runner, clk, m, logger),
		GetToken:     get_token.NewQuery(tokenRepo),
		ListEvents:   list_events.NewQuery(testutil.NewMemoryEventsReadModel(store)),
		Store:        store,
		Premium:      premiumRepo,
		Runner:       runner,
		Clock:        clk,
		Registry:     registry,
		Metrics:      m,
	}
}
