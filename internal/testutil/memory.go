package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/committer"
)

// Store is an in-memory database shared by the memory repositories.
//
// Mutation factories stage their write and return a marker mutation. The write only
// lands when a FakeRunner applies a plan or commits a transaction containing it.
type Store struct {
	mu      sync.Mutex
	seq     int64
	pending map[*spanner.Mutation]func()

	tlds        map[string]*domain.Tld
	premium     map[string]domain.Money
	tokens      map[string]*domain.AllocationToken
	recurrences map[string]*domain.BillingRecurrence
	outbox      []*contracts.OutboxEvent
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		pending:     make(map[*spanner.Mutation]func()),
		tlds:        make(map[string]*domain.Tld),
		premium:     make(map[string]domain.Money),
		tokens:      make(map[string]*domain.AllocationToken),
		recurrences: make(map[string]*domain.BillingRecurrence),
	}
}

func (s *Store) stage(table string, write func()) *spanner.Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	m := spanner.Insert(table, []string{"seq"}, []interface{}{s.seq})
	s.pending[m] = write
	return m
}

func (s *Store) apply(muts []*spanner.Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range muts {
		if write, ok := s.pending[m]; ok {
			write()
			delete(s.pending, m)
		}
	}
}

// PutTld stores a TLD immediately.
func (s *Store) PutTld(tld *domain.Tld) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tlds[tld.Name()] = tld
}

// PutPremium stores a premium list entry immediately.
func (s *Store) PutPremium(listName, label string, price domain.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.premium[listName+"\x00"+label] = price
}

// PutToken stores a token immediately.
func (s *Store) PutToken(token *domain.AllocationToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token()] = token
}

// PutRecurrence stores a recurrence immediately.
func (s *Store) PutRecurrence(r *domain.BillingRecurrence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurrences[r.DomainName()] = r
}

// Token returns the stored token, or nil.
func (s *Store) Token(token string) *domain.AllocationToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

// Recurrence returns the stored recurrence of a domain, or nil.
func (s *Store) Recurrence(domainName string) *domain.BillingRecurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recurrences[domainName]
}

// OutboxEvents returns the committed outbox events in insertion order.
func (s *Store) OutboxEvents() []*contracts.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*contracts.OutboxEvent, len(s.outbox))
	copy(out, s.outbox)
	return out
}

// OutboxEventTypes returns the committed outbox event types, sorted.
func (s *Store) OutboxEventTypes() []string {
	events := s.OutboxEvents()
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.EventType)
	}
	sort.Strings(types)
	return types
}

// MemoryTldRepo implements TldRepository over a Store.
type MemoryTldRepo struct{ store *Store }

// NewMemoryTldRepo creates a MemoryTldRepo.
func NewMemoryTldRepo(store *Store) *MemoryTldRepo { return &MemoryTldRepo{store: store} }

func (r *MemoryTldRepo) GetByName(_ context.Context, name string) (*domain.Tld, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tld, ok := r.store.tlds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTldNotFound, name)
	}
	return tld, nil
}

func (r *MemoryTldRepo) InsertMut(tld *domain.Tld) (*spanner.Mutation, error) {
	return r.store.stage("tlds", func() { r.store.tlds[tld.Name()] = tld }), nil
}

// MemoryPremiumListRepo implements PremiumListRepository over a Store.
type MemoryPremiumListRepo struct {
	store *Store
	Calls int
}

// NewMemoryPremiumListRepo creates a MemoryPremiumListRepo.
func NewMemoryPremiumListRepo(store *Store) *MemoryPremiumListRepo {
	return &MemoryPremiumListRepo{store: store}
}

func (r *MemoryPremiumListRepo) GetPremiumPrice(_ context.Context, listName, label string) (*domain.Money, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.Calls++
	price, ok := r.store.premium[listName+"\x00"+label]
	if !ok {
		return nil, nil
	}
	return &price, nil
}

func (r *MemoryPremiumListRepo) InsertEntryMut(listName, label string, price domain.Money) *spanner.Mutation {
	return r.store.stage("premium_entries", func() { r.store.premium[listName+"\x00"+label] = price })
}

// MemoryAllocationTokenRepo implements AllocationTokenRepository over a Store.
type MemoryAllocationTokenRepo struct{ store *Store }

// NewMemoryAllocationTokenRepo creates a MemoryAllocationTokenRepo.
func NewMemoryAllocationTokenRepo(store *Store) *MemoryAllocationTokenRepo {
	return &MemoryAllocationTokenRepo{store: store}
}

func (r *MemoryAllocationTokenRepo) GetByToken(_ context.Context, token string) (*domain.AllocationToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tokens[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNonexistentAllocationToken, token)
	}
	return t, nil
}

func (r *MemoryAllocationTokenRepo) GetByTokens(_ context.Context, tokens []string) (map[string]*domain.AllocationToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make(map[string]*domain.AllocationToken, len(tokens))
	for _, token := range tokens {
		if t, ok := r.store.tokens[token]; ok {
			out[token] = t
		}
	}
	return out, nil
}

func (r *MemoryAllocationTokenRepo) GetByTokenInTxn(ctx context.Context, _ committer.Transaction, token string) (*domain.AllocationToken, error) {
	return r.GetByToken(ctx, token)
}

func (r *MemoryAllocationTokenRepo) InsertMut(token *domain.AllocationToken) (*spanner.Mutation, error) {
	return r.store.stage("allocation_tokens", func() { r.store.tokens[token.Token()] = token }), nil
}

func (r *MemoryAllocationTokenRepo) RedeemMut(token *domain.AllocationToken) *spanner.Mutation {
	return r.store.stage("allocation_tokens", func() {
		p := token.Params()
		p.Version++
		redeemed, err := domain.NewAllocationToken(p)
		if err != nil {
			panic(err)
		}
		r.store.tokens[token.Token()] = redeemed
	})
}

// MemoryBillingRecurrenceRepo implements BillingRecurrenceRepository over a Store.
type MemoryBillingRecurrenceRepo struct{ store *Store }

// NewMemoryBillingRecurrenceRepo creates a MemoryBillingRecurrenceRepo.
func NewMemoryBillingRecurrenceRepo(store *Store) *MemoryBillingRecurrenceRepo {
	return &MemoryBillingRecurrenceRepo{store: store}
}

func (r *MemoryBillingRecurrenceRepo) GetByDomainName(_ context.Context, domainName string) (*domain.BillingRecurrence, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.recurrences[domainName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBillingRecurrenceNotFound, domainName)
	}
	return rec, nil
}

func (r *MemoryBillingRecurrenceRepo) InsertMut(rec *domain.BillingRecurrence) (*spanner.Mutation, error) {
	return r.store.stage("billing_recurrences", func() { r.store.recurrences[rec.DomainName()] = rec }), nil
}

// MemoryOutboxRepo implements OutboxRepository over a Store.
type MemoryOutboxRepo struct {
	store *Store
	seq   int
}

// NewMemoryOutboxRepo creates a MemoryOutboxRepo.
func NewMemoryOutboxRepo(store *Store) *MemoryOutboxRepo {
	return &MemoryOutboxRepo{store: store}
}

// StageMuts stages one pending event per domain event with sequential ids.
func (r *MemoryOutboxRepo) StageMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		r.seq++
		staged, err := contracts.NewOutboxEvent(fmt.Sprintf("event-%d", r.seq), event)
		if err != nil {
			return nil, err
		}
		staged.Status = m_outbox.StatusPending
		muts = append(muts, r.store.stage("outbox_events", func() { r.store.outbox = append(r.store.outbox, staged) }))
	}
	return muts, nil
}

// MemoryEventsReadModel implements list_events.EventsReadModel over a Store.
type MemoryEventsReadModel struct{ store *Store }

// NewMemoryEventsReadModel creates a MemoryEventsReadModel.
func NewMemoryEventsReadModel(store *Store) *MemoryEventsReadModel {
	return &MemoryEventsReadModel{store: store}
}

// ListEvents returns matching events newest first.
func (m *MemoryEventsReadModel) ListEvents(_ context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	events := m.store.OutboxEvents()
	var out []*m_outbox.Data
	for i := len(events) - 1; i >= 0 && int64(len(out)) < req.Limit; i-- {
		e := events[i]
		if req.EventType != nil && e.EventType != *req.EventType {
			continue
		}
		if req.AggregateID != nil && e.AggregateID != *req.AggregateID {
			continue
		}
		if req.Status != nil && e.Status != *req.Status {
			continue
		}
		out = append(out, &m_outbox.Data{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     spanner.NullJSON{Value: e.Payload, Valid: true},
			Status:      e.Status,
			CreatedAt:   Now,
		})
	}
	return out, nil
}

// ErrInjected is returned by a FakeRunner configured to fail commits.
var ErrInjected = errors.New("injected commit failure")

// FakeRunner implements committer.Runner over a Store.
type FakeRunner struct {
	store    *Store
	FailNext bool
	Commits  int
}

// NewFakeRunner creates a FakeRunner.
func NewFakeRunner(store *Store) *FakeRunner {
	return &FakeRunner{store: store}
}

func (r *FakeRunner) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if r.FailNext {
		r.FailNext = false
		return ErrInjected
	}
	r.store.apply(plan.Mutations())
	r.Commits++
	return nil
}

func (r *FakeRunner) RunInTransaction(ctx context.Context, fn func(context.Context, committer.Transaction) error) error {
	txn := &FakeTxn{}
	if err := fn(ctx, txn); err != nil {
		return err
	}
	if r.FailNext {
		r.FailNext = false
		return ErrInjected
	}
	r.store.apply(txn.buffered)
	r.Commits++
	return nil
}

// FakeTxn buffers mutations until its FakeRunner commits.
type FakeTxn struct {
	buffered []*spanner.Mutation
}

func (t *FakeTxn) ReadRow(_ context.Context, table string, _ spanner.Key, _ []string) (*spanner.Row, error) {
	return nil, status.Errorf(codes.Unimplemented, "FakeTxn does not read %s rows", table)
}

func (t *FakeTxn) BufferWrite(ms []*spanner.Mutation) error {
	t.buffered = append(t.buffered, ms...)
	return nil
}

var (
	_ contracts.TldRepository               = (*MemoryTldRepo)(nil)
	_ contracts.PremiumListRepository       = (*MemoryPremiumListRepo)(nil)
	_ contracts.AllocationTokenRepository   = (*MemoryAllocationTokenRepo)(nil)
	_ contracts.BillingRecurrenceRepository = (*MemoryBillingRecurrenceRepo)(nil)
	_ contracts.OutboxRepository            = (*MemoryOutboxRepo)(nil)
	_ committer.Runner                      = (*FakeRunner)(nil)
	_ committer.Transaction                 = (*FakeTxn)(nil)
	_ list_events.EventsReadModel           = (*MemoryEventsReadModel)(nil)
)
