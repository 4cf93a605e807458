// Package committer collects Spanner mutations from repositories and applies them
// atomically.
//
// Repositories never write. They return mutations, use cases gather them in a
// CommitPlan together with outbox events, and the Committer applies the plan in one
// transaction:
//
//	plan := committer.NewPlan()
//	plan.Add(recurrenceMut)
//	plan.Add(outboxRepo.InsertMut(event))
//	return comm.Apply(ctx, plan)
//
// When a write depends on a read (token redemption), use RunInTransaction: reads
// made through the Transaction take locks, so concurrent transactions touching the
// same rows are serialized by Spanner and one of them is retried or aborted.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when a row changed since it was loaded.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Transaction is the subset of *spanner.ReadWriteTransaction used by repositories.
type Transaction interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	BufferWrite(ms []*spanner.Mutation) error
}

// Runner applies plans and runs read-write transactions.
type Runner interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, txn Transaction) error) error
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

var _ Runner = (*Committer)(nil)

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// RunInTransaction executes fn within a read-write transaction. Spanner may invoke
// fn more than once if the transaction aborts, so fn must not keep state between calls.
func (c *Committer) RunInTransaction(ctx context.Context, fn func(context.Context, Transaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return fn(ctx, txn)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if the row identified by table and key
// still carries expectedVersion in its "version" column.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, table string, key spanner.Key, expectedVersion int64, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	return c.RunInTransaction(ctx, func(ctx context.Context, txn Transaction) error {
		if err := CheckVersion(ctx, txn, table, key, expectedVersion); err != nil {
			return err
		}
		return txn.BufferWrite(plan.Mutations())
	})
}

// CheckVersion reads the version column of a row inside txn and compares it.
func CheckVersion(ctx context.Context, txn Transaction, table string, key spanner.Key, expectedVersion int64) error {
	row, err := txn.ReadRow(ctx, table, key, []string{"version"})
	if err != nil {
		return fmt.Errorf("failed to read %s version: %w", table, err)
	}

	var currentVersion int64
	if err := row.Column(0, &currentVersion); err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if currentVersion != expectedVersion {
		return fmt.Errorf("%w: %s %v: expected version %d, got %d",
			ErrVersionConflict, table, key, expectedVersion, currentVersion)
	}
	return nil
}
