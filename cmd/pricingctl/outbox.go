package main

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
)

// retention is how long processed events of one status are kept.
type retention struct {
	status string
	days   int
}

type cleanupResult struct {
	Status  string `json:"status" yaml:"status"`
	Cutoff  string `json:"cutoff" yaml:"cutoff"`
	Deleted int64  `json:"deleted" yaml:"deleted"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run"`
}

func newOutboxCommand(c *cli) *cobra.Command {
	outbox := &cobra.Command{Use: "outbox", Short: "Outbox maintenance"}

	var (
		completedDays, failedDays int
		dryRun                    bool
	)
	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete processed outbox events past their retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.services(cmd)
			if err != nil {
				return err
			}
			results, err := cleanupOutbox(cmd.Context(), opts.SpannerClient, c.logger, time.Now().UTC(), []retention{
				{status: m_outbox.StatusCompleted, days: completedDays},
				{status: m_outbox.StatusFailed, days: failedDays},
			}, dryRun)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), results)
		},
	}
	cleanup.Flags().IntVar(&completedDays, "completed-retention", 30, "retention days for completed events")
	cleanup.Flags().IntVar(&failedDays, "failed-retention", 90, "retention days for failed events")
	cleanup.Flags().BoolVar(&dryRun, "dry-run", false, "count what would be deleted without deleting")

	outbox.AddCommand(cleanup)
	return outbox
}

// cleanupOutbox purges each status with partitioned DML, or only counts in dry-run mode.
func cleanupOutbox(
	ctx context.Context,
	client *spanner.Client,
	logger *zap.Logger,
	now time.Time,
	policies []retention,
	dryRun bool,
) ([]cleanupResult, error) {
	model := m_outbox.NewModel()
	results := make([]cleanupResult, 0, len(policies))

	for _, p := range policies {
		cutoff := now.AddDate(0, 0, -p.days)
		logger.Info("cleaning outbox",
			zap.String("status", p.status),
			zap.Time("cutoff", cutoff),
			zap.Bool("dry_run", dryRun),
		)

		var n int64
		var err error
		if dryRun {
			n, err = countRows(ctx, client, model.CountStatement(p.status, cutoff))
		} else {
			n, err = client.PartitionedUpdate(ctx, model.PurgeStatement(p.status, cutoff))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to clean %s events: %w", p.status, err)
		}

		results = append(results, cleanupResult{
			Status:  p.status,
			Cutoff:  cutoff.Format(time.RFC3339),
			Deleted: n,
			DryRun:  dryRun,
		})
	}
	return results, nil
}

func countRows(ctx context.Context, client *spanner.Client, stmt spanner.Statement) (int64, error) {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, err
	}
	return count, nil
}
