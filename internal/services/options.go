package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/get_token"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/create_domain"
	"github.com/light-bringer/registry-pricing-service/internal/config"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/registry-pricing-service/internal/transport/grpc/pricing"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	Registry       *prometheus.Registry
	PricingHandler *pricing.Handler

	// Exposed for the HTTP API and the CLI, which call them without going through gRPC.
	CheckFee     *check_fee.Interactor
	CreateDomain *create_domain.Interactor
	GetToken     *get_token.Query
	ListEvents   *list_events.Query
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	sunriseDiscount, err := cfg.Pricing.SunriseDiscountFraction()
	if err != nil {
		return nil, err
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 3. Create repositories
	tldRepo := repo.NewTldRepo(spannerClient)
	tokenRepo := repo.NewAllocationTokenRepo(spannerClient)
	recurrenceRepo := repo.NewBillingRecurrenceRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo()
	premiumRepo := repo.NewPremiumListCache(repo.NewPremiumListRepo(spannerClient), cfg.Pricing.PremiumCacheTTL, clk).
		WithObserver(m.IncrementPremiumCache)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	// 4. Create domain services
	premiumPricer := services.NewStaticPremiumListPricingEngine(premiumRepo)
	pricingLogic := services.NewDomainPricingLogic(premiumPricer, services.DefaultCustomLogic(), sunriseDiscount)
	resolver := services.NewAllocationTokenResolver(tokenRepo, premiumPricer)

	// 5. Create command use cases
	checkFee := check_fee.NewInteractor(tldRepo, recurrenceRepo, resolver, pricingLogic, clk, m, logger)
	createDomain := create_domain.NewInteractor(
		tldRepo, tokenRepo, recurrenceRepo, outboxRepo, resolver, pricingLogic, comm, clk, m, logger,
	)

	// 6. Create query use cases
	getToken := get_token.NewQuery(tokenRepo)
	listEvents := list_events.NewQuery(eventsReadModel)

	// 7. Create gRPC handler
	pricingHandler := pricing.NewHandler(checkFee, createDomain, getToken, listEvents)

	return &ServiceOptions{
		SpannerClient:  spannerClient,
		Registry:       registry,
		PricingHandler: pricingHandler,
		CheckFee:       checkFee,
		CreateDomain:   createDomain,
		GetToken:       getToken,
		ListEvents:     listEvents,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
